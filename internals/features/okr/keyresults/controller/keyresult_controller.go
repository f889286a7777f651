package controller

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notiService "okr_backend/internals/features/collab/notifications/service"
	"okr_backend/internals/features/okr/keyresults/dto"
	"okr_backend/internals/features/okr/keyresults/model"
	objModel "okr_backend/internals/features/okr/objectives/model"
	"okr_backend/internals/features/okr/rollup"
	fileModel "okr_backend/internals/features/storage/files/model"
	helper "okr_backend/internals/helpers"
)

type KeyResultController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Rollup   *rollup.Service
	Noti     *notiService.NotificationService
}

func NewKeyResultController(db *gorm.DB) *KeyResultController {
	return &KeyResultController{
		DB:       db,
		Validate: validator.New(),
		Rollup:   rollup.NewService(db),
		Noti:     notiService.NewNotificationService(db),
	}
}

// GET /api/v1/kr
func (ctrl *KeyResultController) GetKrs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.KeyResultModel{})
	if id := c.Query("id"); id != "" {
		q = q.Where("id = ?", id)
	}
	if name := c.Query("name"); name != "" {
		q = q.Where("name = ?", name)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status == "true")
	}
	if userID := c.Query("userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if objectiveID := c.Query("objectiveId"); objectiveID != "" {
		q = q.Where("objective_id = ?", objectiveID)
	}
	if progress := c.Query("progress"); progress != "" {
		if v, err := strconv.ParseFloat(progress, 64); err == nil {
			q = q.Where("progress = ?", v)
		}
	}
	if deadline := c.QueryInt("deadline"); deadline > 0 {
		q = q.Where("deadline < ?", time.Unix(int64(deadline), 0))
	}
	if createdAt := c.QueryInt("createdAt"); createdAt > 0 {
		q = q.Where("created_at >= ?", time.Unix(int64(createdAt), 0))
	}
	if updatedAt := c.QueryInt("updatedAt"); updatedAt > 0 {
		q = q.Where("updated_at >= ?", time.Unix(int64(updatedAt), 0))
	}

	var krs []model.KeyResultModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&krs).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get krs successfully", dto.ToKeyResultResponses(krs))
}

// GET /api/v1/kr/:kr_id
func (ctrl *KeyResultController) GetKr(c *fiber.Ctx) error {
	krID, err := uuid.Parse(c.Params("kr_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid key result id")
	}

	var kr model.KeyResultModel
	if err := ctrl.DB.First(&kr, "id = ?", krID).Error; err != nil {
		return helper.DBError(c, err, "Key result not found")
	}
	return helper.Success(c, "Get keyresult by id successfully", dto.ToKeyResultResponse(kr))
}

// POST /api/v1/kr/create
// Creating a key result bumps its objective's target by the key result's
// target, then re-aggregates progress up the hierarchy.
func (ctrl *KeyResultController) CreateKr(c *fiber.Ctx) error {
	var req dto.CreateKrRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var obj objModel.ObjectiveModel
	if err := ctrl.DB.First(&obj, "id = ?", req.ObjectiveID).Error; err != nil {
		return helper.DBError(c, err, "Objective not found")
	}

	if err := ctrl.DB.Model(&objModel.ObjectiveModel{}).
		Where("id = ?", obj.ID).
		Update("target", obj.Target+req.Target).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	kr := model.KeyResultModel{
		ObjectiveID: req.ObjectiveID,
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Metric:      req.Metric,
		Target:      req.Target,
		Expected:    req.Expected,
		Deadline:    dto.DeadlineTime(req.Deadline),
	}
	if req.Progress != nil {
		kr.Progress = *req.Progress
	}
	if err := ctrl.DB.Create(&kr).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	if err := ctrl.Rollup.FromKeyResultChange(kr.ObjectiveID); err != nil {
		return helper.DBError(c, err, "")
	}

	ctrl.Noti.Notify(kr.UserID, fmt.Sprintf("Key result %s has been assigned to you", kr.Name))

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created key result successfully", dto.ToKeyResultResponse(kr))
}

// PUT /api/v1/kr/update/:kr_id
func (ctrl *KeyResultController) UpdateKr(c *fiber.Ctx) error {
	krID, err := uuid.Parse(c.Params("kr_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid key result id")
	}

	var req dto.UpdateKrRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.IsEmpty() {
		return helper.Error(c, fiber.StatusNoContent, "Nothing to update")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var kr model.KeyResultModel
	if err := ctrl.DB.First(&kr, "id = ?", krID).Error; err != nil {
		return helper.DBError(c, err, "Key result not found")
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Target != nil {
		changes["target"] = *req.Target
	}
	if req.Progress != nil {
		changes["progress"] = *req.Progress
	}
	if req.Deadline != nil {
		changes["deadline"] = dto.DeadlineTime(*req.Deadline)
	}
	if err := ctrl.DB.Model(&kr).Updates(changes).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	if req.Progress != nil {
		if err := ctrl.Rollup.FromKeyResultChange(kr.ObjectiveID); err != nil {
			return helper.DBError(c, err, "")
		}
	}

	return helper.Success(c, "Updated keyresult successfully", dto.ToKeyResultResponse(kr))
}

// PUT /api/v1/kr/grading_kr/:kr_id
// Only the objective's supervisor may grade; a rejected grade mutates nothing.
func (ctrl *KeyResultController) GradingKr(c *fiber.Ctx) error {
	krID, err := uuid.Parse(c.Params("kr_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid key result id")
	}

	var req dto.GradingKrRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	actorID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var kr model.KeyResultModel
	if err := ctrl.DB.First(&kr, "id = ?", krID).Error; err != nil {
		return helper.DBError(c, err, "Key result not found")
	}

	var obj objModel.ObjectiveModel
	if err := ctrl.DB.First(&obj, "id = ?", kr.ObjectiveID).Error; err != nil {
		return helper.DBError(c, err, "Objective not found")
	}
	if obj.SupervisorID != actorID {
		return helper.Error(c, fiber.StatusForbidden, "Only the objective's supervisor may grade this key result")
	}

	if err := ctrl.DB.Model(&kr).Updates(map[string]interface{}{
		"status":           true,
		"supervisor_grade": req.Grade,
	}).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	if err := ctrl.Rollup.FromKeyResultChange(kr.ObjectiveID); err != nil {
		return helper.DBError(c, err, "")
	}

	ctrl.Noti.Notify(kr.UserID, fmt.Sprintf("Key result %s has been graded", kr.Name))

	return helper.Success(c, "Graded keyresult successfully", dto.ToKeyResultResponse(kr))
}

// DELETE /api/v1/kr/delete/:kr_id
func (ctrl *KeyResultController) DeleteKr(c *fiber.Ctx) error {
	krID, err := uuid.Parse(c.Params("kr_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid key result id")
	}

	var kr model.KeyResultModel
	if err := ctrl.DB.First(&kr, "id = ?", krID).Error; err != nil {
		return helper.DBError(c, err, "Key result not found")
	}

	if err := ctrl.DB.Delete(&kr).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	if err := ctrl.Rollup.FromKeyResultChange(kr.ObjectiveID); err != nil {
		return helper.DBError(c, err, "")
	}

	return helper.Success(c, "Deleted keyresult successfully", nil)
}

// POST /api/v1/kr/add_file/:kr_id
func (ctrl *KeyResultController) AddFile(c *fiber.Ctx) error {
	krID, err := uuid.Parse(c.Params("kr_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid key result id")
	}

	var req dto.AddFileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var kr model.KeyResultModel
	if err := ctrl.DB.First(&kr, "id = ?", krID).Error; err != nil {
		return helper.DBError(c, err, "Key result not found")
	}

	shared := fileModel.FileSharedModel{
		Fullname:    req.FilePath,
		VirtualPath: req.FilePath,
		KeyResultID: kr.ID,
	}
	if err := ctrl.DB.Create(&shared).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Added file to keyresult successfully", shared)
}
