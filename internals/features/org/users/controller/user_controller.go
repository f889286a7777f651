package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"okr_backend/internals/features/org/users/dto"
	"okr_backend/internals/features/org/users/model"
	"okr_backend/internals/features/org/users/service"
	helper "okr_backend/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

// GET /api/v1/user
func (ctrl *UserController) GetUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.UserModel{})
	if name := c.Query("username"); name != "" {
		q = q.Where("user_name = ?", name)
	}
	if email := c.Query("email"); email != "" {
		q = q.Where("email = ?", email)
	}
	if depID := c.Query("departmentId"); depID != "" {
		q = q.Where("department_id = ?", depID)
	}
	if orgID := c.Query("organizeId"); orgID != "" {
		q = q.Where("organize_id = ?", orgID)
	}

	var users []model.UserModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	return helper.Success(c, "Get users successfully", dto.ToUserResponses(users))
}

// GET /api/v1/user/check_profile
// Profile of whoever owns the access token.
func (ctrl *UserController) CheckProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.DBError(c, err, "User not found")
	}

	return helper.Success(c, "Get user profile successfully", dto.ToUserResponse(user))
}

// GET /api/v1/user/:user_id
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.DBError(c, err, "User not found")
	}

	return helper.Success(c, "Get user by id successfully", dto.ToUserResponse(user))
}

// POST /api/v1/user/create
// Admin-side creation: unlike register, role and org placement can be set
// directly.
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		UserName:     req.UserName,
		Email:        req.Email,
		Password:     hash,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		OrganizeID:   req.OrganizeID,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created user successfully", dto.ToUserResponse(user))
}

// PUT /api/v1/user/update/:user_id
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.IsEmpty() {
		return helper.Error(c, fiber.StatusNoContent, "Nothing to update")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.DBError(c, err, "User not found")
	}

	changes := map[string]interface{}{}
	if req.UserName != nil {
		changes["user_name"] = *req.UserName
	}
	if req.FirstName != nil {
		changes["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		changes["last_name"] = *req.LastName
	}
	if req.DepartmentID != nil {
		changes["department_id"] = *req.DepartmentID
	}
	if req.OrganizeID != nil {
		changes["organize_id"] = *req.OrganizeID
	}
	if req.Role != nil {
		changes["role"] = *req.Role
	}

	if err := ctrl.DB.Model(&user).Updates(changes).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	return helper.Success(c, "Updated user successfully", dto.ToUserResponse(user))
}

// DELETE /api/v1/user/delete/:user_id
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	res := ctrl.DB.Delete(&model.UserModel{}, "id = ?", userID)
	if res.Error != nil {
		return helper.DBError(c, res.Error, "")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	return helper.Success(c, "Deleted user successfully", nil)
}
