package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all notification mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message. Please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been created successfully. You can now browse courses and start learning.</p>`, name)
	if err := SendEmail([]string{email}, "Welcome!", getEmailTemplate("Welcome", body)); err != nil {
		log.Println("Failed to send welcome email:", err)
	}
}

func SendOTPEmail(email, otp string) {
	body := fmt.Sprintf(`
		<h2>Your One Time Password</h2>
		<div class="info-box"><strong>%s</strong></div>
		<p>This OTP is valid for 10 minutes. Do not share it with anyone.</p>`, otp)
	if err := SendEmail([]string{email}, "Your OTP Code", getEmailTemplate("OTP Verification", body)); err != nil {
		log.Println("Failed to send OTP email:", err)
	}
}

func SendEnrollmentEmail(email, userName, courseName string) {
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>You have been enrolled in <strong>%s</strong>.</p>
		<p>Head over to your dashboard to start with the first section.</p>`, userName, courseName)
	if err := SendEmail([]string{email}, "Enrollment Confirmed", getEmailTemplate("Enrollment Confirmed", body)); err != nil {
		log.Println("Failed to send enrollment email:", err)
	}
}

func SendCourseCompletionEmail(email, userName, courseName string) {
	body := fmt.Sprintf(`
		<h2>Congratulations %s!</h2>
		<p>You have completed <strong>%s</strong>.</p>
		<p>You can now request your completion certificate from the course page.</p>`, userName, courseName)
	if err := SendEmail([]string{email}, "Course Completed", getEmailTemplate("Course Completed", body)); err != nil {
		log.Println("Failed to send completion email:", err)
	}
}

func SendCertificateEmail(email, userName, courseName, certificateNumber string) {
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your certificate for <strong>%s</strong> has been issued.</p>
		<div class="info-box">Certificate Number: <strong>%s</strong></div>`, userName, courseName, certificateNumber)
	if err := SendEmail([]string{email}, "Certificate Issued", getEmailTemplate("Certificate Issued", body)); err != nil {
		log.Println("Failed to send certificate email:", err)
	}
}
