package controller

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notiService "okr_backend/internals/features/collab/notifications/service"
	krModel "okr_backend/internals/features/okr/keyresults/model"
	"okr_backend/internals/features/okr/objectives/dto"
	"okr_backend/internals/features/okr/objectives/model"
	"okr_backend/internals/features/okr/rollup"
	userModel "okr_backend/internals/features/org/users/model"
	helper "okr_backend/internals/helpers"
)

type ObjectiveController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Rollup   *rollup.Service
	Noti     *notiService.NotificationService
}

func NewObjectiveController(db *gorm.DB) *ObjectiveController {
	return &ObjectiveController{
		DB:       db,
		Validate: validator.New(),
		Rollup:   rollup.NewService(db),
		Noti:     notiService.NewNotificationService(db),
	}
}

// GET /api/v1/objective
func (ctrl *ObjectiveController) GetObjs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.ObjectiveModel{})
	if id := c.Query("id"); id != "" {
		q = q.Where("id = ?", id)
	}
	if name := c.Query("name"); name != "" {
		q = q.Where("name = ?", name)
	}
	if periodID := c.Query("periodId"); periodID != "" {
		q = q.Where("period_id = ?", periodID)
	}
	if parentID := c.Query("parentObjectiveId"); parentID != "" {
		q = q.Where("parent_objective_id = ?", parentID)
	}
	if objFor := c.Query("objFor"); objFor != "" {
		q = q.Where("obj_for = ?", objFor)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status == "true")
	}

	var objs []model.ObjectiveModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&objs).Error; err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.Success(c, "Get all objectives successfully", dto.ToObjectiveResponses(objs))
}

// GET /api/v1/objective/:obj_id
func (ctrl *ObjectiveController) GetObj(c *fiber.Ctx) error {
	objID, err := uuid.Parse(c.Params("obj_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid objective id")
	}

	var obj model.ObjectiveModel
	if err := ctrl.DB.First(&obj, "id = ?", objID).Error; err != nil {
		return helper.DBError(c, err, "Objective not found")
	}
	return helper.Success(c, "Get objective by id successfully", dto.ToObjectiveResponse(obj))
}

// POST /api/v1/objective/create
// A parented objective bumps its parent's target by its own and joins the
// progress aggregation; child_ids are linked according to obj_for.
func (ctrl *ObjectiveController) CreateObj(c *fiber.Ctx) error {
	var req dto.CreateObjRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.ParentObjectiveID != nil {
		var parent model.ObjectiveModel
		if err := ctrl.DB.First(&parent, "id = ?", *req.ParentObjectiveID).Error; err != nil {
			return helper.DBError(c, err, "Parent objective not found")
		}
		if err := ctrl.DB.Model(&model.ObjectiveModel{}).
			Where("id = ?", parent.ID).
			Update("target", parent.Target+req.Target).Error; err != nil {
			return helper.DBError(c, err, "")
		}
	}

	obj := model.ObjectiveModel{
		PeriodID:          req.PeriodID,
		SupervisorID:      req.SupervisorID,
		ParentObjectiveID: req.ParentObjectiveID,
		Name:              req.Name,
		Description:       req.Description,
		ObjType:           dto.NormalizeObjType(req.ObjType),
		ObjFor:            req.ObjFor,
		Metric:            req.Metric,
		Target:            req.Target,
		Expected:          req.Expected,
		Progress:          req.Progress,
		Deadline:          dto.DeadlineTime(req.Deadline),
	}
	if err := ctrl.DB.Create(&obj).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	if err := ctrl.linkChildren(obj, req.ChildIDs); err != nil {
		return helper.DBError(c, err, "")
	}

	if obj.ParentObjectiveID != nil {
		if err := ctrl.Rollup.FromObjectiveChange(*obj.ParentObjectiveID); err != nil {
			return helper.DBError(c, err, "")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created objective successfully", dto.ToObjectiveResponse(obj))
}

// linkChildren attaches the objective to users, departments, or the organize
// depending on its tier.
func (ctrl *ObjectiveController) linkChildren(obj model.ObjectiveModel, childIDs []uuid.UUID) error {
	switch obj.ObjFor {
	case model.ObjForUser:
		for _, id := range childIDs {
			if err := ctrl.addToUser(obj.ID, id); err != nil {
				return err
			}
		}
	case model.ObjForDepartment:
		for _, userID := range childIDs {
			if err := ctrl.addToUser(obj.ID, userID); err != nil {
				return err
			}
		}
		for _, userID := range childIDs {
			var user userModel.UserModel
			if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
				return err
			}
			if user.DepartmentID == nil {
				continue
			}
			if err := ctrl.addToDepartment(obj.ID, *user.DepartmentID); err != nil {
				return err
			}
		}
	case model.ObjForOrganize:
		for _, departmentID := range childIDs {
			if err := ctrl.addToDepartment(obj.ID, departmentID); err != nil {
				return err
			}
		}
		if len(childIDs) > 0 {
			var user userModel.UserModel
			err := ctrl.DB.Where("department_id = ? AND organize_id IS NOT NULL", childIDs[0]).First(&user).Error
			if err == nil && user.OrganizeID != nil {
				return ctrl.addToOrganize(obj.ID, *user.OrganizeID)
			}
		}
	}
	return nil
}

// PUT /api/v1/objective/update/:obj_id
func (ctrl *ObjectiveController) UpdateObj(c *fiber.Ctx) error {
	objID, err := uuid.Parse(c.Params("obj_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid objective id")
	}

	var req dto.UpdateObjRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.IsEmpty() {
		return helper.Error(c, fiber.StatusNoContent, "Nothing to update")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var obj model.ObjectiveModel
	if err := ctrl.DB.First(&obj, "id = ?", objID).Error; err != nil {
		return helper.DBError(c, err, "Objective not found")
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
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if err := ctrl.DB.Model(&obj).Updates(changes).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	if req.Progress != nil && obj.ParentObjectiveID != nil {
		if err := ctrl.Rollup.FromObjectiveChange(*obj.ParentObjectiveID); err != nil {
			return helper.DBError(c, err, "")
		}
	}

	return helper.Success(c, "Updated objective successfully", dto.ToObjectiveResponse(obj))
}

// DELETE /api/v1/objective/delete/:obj_id
// Linked users are notified, then the remaining siblings re-aggregate up two
// levels.
func (ctrl *ObjectiveController) DeleteObj(c *fiber.Ctx) error {
	objID, err := uuid.Parse(c.Params("obj_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid objective id")
	}

	var obj model.ObjectiveModel
	if err := ctrl.DB.First(&obj, "id = ?", objID).Error; err != nil {
		return helper.DBError(c, err, "Objective not found")
	}

	var links []model.ObjectiveOnUser
	if err := ctrl.DB.Where("objective_id = ?", obj.ID).Find(&links).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	if err := ctrl.DB.Delete(&obj).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	message := fmt.Sprintf("Objective %s has been deleted", obj.Name)
	for _, link := range links {
		ctrl.Noti.Notify(link.UserID, message)
	}

	if obj.ParentObjectiveID != nil {
		if err := ctrl.Rollup.FromObjectiveChange(*obj.ParentObjectiveID); err != nil {
			return helper.DBError(c, err, "")
		}
	}

	return helper.Success(c, "Deleted objective successfully", nil)
}

// GET /api/v1/objective/check_state/:obj_id
// On-demand closing check: an objective closes when its deadline has passed
// or every key result is graded. Achievement derives from progress at that
// moment.
func (ctrl *ObjectiveController) CheckStateObj(c *fiber.Ctx) error {
	objID, err := uuid.Parse(c.Params("obj_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid objective id")
	}

	var obj model.ObjectiveModel
	if err := ctrl.DB.First(&obj, "id = ?", objID).Error; err != nil {
		return helper.DBError(c, err, "Objective not found")
	}

	var krs []krModel.KeyResultModel
	if err := ctrl.DB.Where("objective_id = ?", obj.ID).Limit(500).Find(&krs).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	allGraded := true
	for _, kr := range krs {
		if !kr.Status {
			allGraded = false
			break
		}
	}

	deadlinePassed := obj.Deadline.Before(time.Now())
	if deadlinePassed || allGraded {
		progress := 0.0
		if obj.Progress != nil {
			progress = *obj.Progress
		}

		var achievement string
		switch {
		case progress > 100.0:
			achievement = model.AchievementExceed
		case progress == 100.0:
			achievement = model.AchievementAchieved
		default:
			achievement = model.AchievementNon
		}

		if err := ctrl.DB.Model(&obj).Updates(map[string]interface{}{
			"status":      true,
			"achievement": achievement,
		}).Error; err != nil {
			return helper.DBError(c, err, "")
		}
		obj.Status = true
		obj.Achievement = &achievement
	}

	return helper.Success(c, "Check state objective successfully", dto.ToObjectiveResponse(obj))
}

// POST /api/v1/objective/add_to_user/:obj_id
func (ctrl *ObjectiveController) AddToUser(c *fiber.Ctx) error {
	return ctrl.addLink(c, func(objID, targetID uuid.UUID) error {
		return ctrl.addToUser(objID, targetID)
	})
}

// POST /api/v1/objective/add_to_department/:obj_id
func (ctrl *ObjectiveController) AddToDepartment(c *fiber.Ctx) error {
	return ctrl.addLink(c, func(objID, targetID uuid.UUID) error {
		return ctrl.addToDepartment(objID, targetID)
	})
}

// POST /api/v1/objective/add_to_org/:obj_id
func (ctrl *ObjectiveController) AddToOrganize(c *fiber.Ctx) error {
	return ctrl.addLink(c, func(objID, targetID uuid.UUID) error {
		return ctrl.addToOrganize(objID, targetID)
	})
}

func (ctrl *ObjectiveController) addLink(c *fiber.Ctx, link func(objID, targetID uuid.UUID) error) error {
	objID, err := uuid.Parse(c.Params("obj_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid objective id")
	}

	var req dto.AddLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := link(objID, req.TargetID); err != nil {
		return helper.DBError(c, err, "")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Linked objective successfully", nil)
}

func (ctrl *ObjectiveController) addToUser(objID, userID uuid.UUID) error {
	return ctrl.DB.Create(&model.ObjectiveOnUser{ObjectiveID: objID, UserID: userID}).Error
}

func (ctrl *ObjectiveController) addToDepartment(objID, departmentID uuid.UUID) error {
	return ctrl.DB.Create(&model.ObjectiveOnDepartment{ObjectiveID: objID, DepartmentID: departmentID}).Error
}

func (ctrl *ObjectiveController) addToOrganize(objID, organizeID uuid.UUID) error {
	return ctrl.DB.Create(&model.ObjectiveOnOrganize{ObjectiveID: objID, OrganizeID: organizeID}).Error
}
