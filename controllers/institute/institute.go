package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func AdminCreateInstitute(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedInstitute").(*struct {
		Name          string `json:"name"`
		Code          string `json:"code"`
		Address       string `json:"address"`
		City          string `json:"city"`
		State         string `json:"state"`
		ContactEmail  string `json:"contact_email"`
		ContactMobile string `json:"contact_mobile"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.Institute
	if err := database.Database.Db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Institute code already in use!", nil)
	}

	institute := models.Institute{
		Name:          reqData.Name,
		Code:          reqData.Code,
		Address:       reqData.Address,
		City:          reqData.City,
		State:         reqData.State,
		ContactEmail:  reqData.ContactEmail,
		ContactMobile: reqData.ContactMobile,
		IsActive:      true,
	}

	if err := database.Database.Db.Create(&institute).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create institute!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Institute created successfully!", institute)
}

func AdminUpdateInstitute(c *fiber.Ctx) error {
	instituteID := c.Locals("instituteIDParam").(int)

	var institute models.Institute
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", instituteID, false).First(&institute).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Institute not found!", nil)
	}

	reqData, ok := c.Locals("validatedInstituteUpdate").(*struct {
		Name          *string `json:"name"`
		Address       *string `json:"address"`
		City          *string `json:"city"`
		State         *string `json:"state"`
		ContactEmail  *string `json:"contact_email"`
		ContactMobile *string `json:"contact_mobile"`
		IsActive      *bool   `json:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Name != nil {
		institute.Name = *reqData.Name
	}
	if reqData.Address != nil {
		institute.Address = *reqData.Address
	}
	if reqData.City != nil {
		institute.City = *reqData.City
	}
	if reqData.State != nil {
		institute.State = *reqData.State
	}
	if reqData.ContactEmail != nil {
		institute.ContactEmail = *reqData.ContactEmail
	}
	if reqData.ContactMobile != nil {
		institute.ContactMobile = *reqData.ContactMobile
	}
	if reqData.IsActive != nil {
		institute.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(&institute).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update institute!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Institute updated successfully!", institute)
}

func AdminListInstitutes(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedInstituteList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Institute{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var institutes []models.Institute
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&institutes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch institutes!", nil)
	}

	response := map[string]interface{}{
		"institutes": institutes,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Institutes fetched successfully!", response)
}

func AdminDeleteInstitute(c *fiber.Ctx) error {
	instituteID := c.Locals("instituteIDParam").(int)

	var institute models.Institute
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", instituteID, false).First(&institute).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Institute not found!", nil)
	}

	institute.IsDeleted = true
	if err := database.Database.Db.Save(&institute).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete institute!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Institute deleted successfully!", nil)
}

// viewerInstitute resolves the institute the viewer manages. Admins may pass
// any institute ID; institute admins are locked to their own.
func viewerInstitute(c *fiber.Ctx) (uint, bool) {
	role, ok := c.Locals("role").(middleware.Role)
	if !ok {
		return 0, false
	}

	switch role {
	case middleware.RoleAdmin:
		if id, ok := c.Locals("instituteIDParam").(int); ok && id > 0 {
			return uint(id), true
		}
		return 0, false
	case middleware.RoleInstituteAdmin:
		if id, ok := c.Locals("instituteId").(uint); ok {
			return id, true
		}
		return 0, false
	case middleware.RoleStudent:
		return 0, false
	}
	return 0, false
}

// CreateInstituteStudent registers a student under the viewer's institute
func CreateInstituteStudent(c *fiber.Ctx) error {
	instituteID, ok := viewerInstitute(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No institute associated with this account!", nil)
	}

	var institute models.Institute
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_active = ?", instituteID, false, true).First(&institute).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Institute not found or inactive!", nil)
	}

	reqData, ok := c.Locals("validatedStudent").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process password!", nil)
	}

	student := models.User{
		Name:        reqData.Name,
		Email:       reqData.Email,
		Mobile:      reqData.Mobile,
		Password:    string(hashedPassword),
		Role:        middleware.RoleStudent.String(),
		InstituteID: &institute.ID,
	}

	if err := database.Database.Db.Create(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create student!", nil)
	}

	go utils.SendWelcomeEmail(student.Email, student.Name)

	student.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student created successfully!", student)
}

// ListInstituteStudents lists the students of the viewer's institute
func ListInstituteStudents(c *fiber.Ctx) error {
	instituteID, ok := viewerInstitute(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No institute associated with this account!", nil)
	}

	reqData, _ := c.Locals("validatedStudentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{}).
		Where("institute_id = ? AND role = ? AND is_deleted = ?", instituteID, middleware.RoleStudent.String(), false)

	var total int64
	db.Count(&total)

	var students []models.User
	if err := db.Omit("password").Offset(offset).Limit(limit).Order("created_at desc").Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}
	for i := range students {
		students[i].Password = ""
	}

	response := map[string]interface{}{
		"students": students,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", response)
}

// GetStudentProgress lets an institute admin view one student's enrollments
// and progress across the institute's courses only
func GetStudentProgress(c *fiber.Ctx) error {
	instituteID, ok := viewerInstitute(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No institute associated with this account!", nil)
	}

	studentID := c.Locals("studentID").(int)

	var student models.User
	if err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = ?", studentID, middleware.RoleStudent.String(), false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	// Institute admins may only inspect their own students
	if student.InstituteID == nil || *student.InstituteID != instituteID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student does not belong to your institute!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.student_id = ? AND enrollments.is_deleted = ? AND courses.institute_id = ?", studentID, false, instituteID).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	student.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student":     student,
		"enrollments": enrollments,
	})
}
