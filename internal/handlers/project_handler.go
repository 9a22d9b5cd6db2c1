package handlers

import (
	"errors"
	"net/http"

	"business-tracker-api/internal/authz"
	"business-tracker-api/internal/database"
	"business-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProjectRequest carries the full project field set for create and is
// reused with pointer fields for partial update.
type ProjectRequest struct {
	InternalNumber   string   `json:"internalNumber" binding:"required"`
	Customer         string   `json:"customer"`
	RequestNumber    string   `json:"requestNumber"`
	NotificationDate string   `json:"notificationDate"`
	DeliveryDate     string   `json:"deliveryDate"`
	Description      string   `json:"description" binding:"required"`
	WeightKg         *float64 `json:"weightKg"`
	Expert           string   `json:"expert"`
	Operator         string   `json:"operator"`
	WarrantyPP       string   `json:"warrantyPp"`
	TechOfficeStatus string   `json:"techOfficeStatus"`
	PurchasingStatus string   `json:"purchasingStatus"`
	ProductionStatus string   `json:"productionStatus"`
	InspectionStatus string   `json:"inspectionStatus"`
	ShipmentDate     string   `json:"shipmentDate"`
	InvoiceDate      string   `json:"invoiceDate"`
	PaymentAmount    *float64 `json:"paymentAmount"`
	PaymentDate      string   `json:"paymentDate"`
	Status           string   `json:"status" binding:"required"`
	Notes            string   `json:"notes"`
}

// UpdateProjectRequest is the partial-update form: absent fields are
// left untouched.
type UpdateProjectRequest struct {
	InternalNumber   *string  `json:"internalNumber"`
	Customer         *string  `json:"customer"`
	RequestNumber    *string  `json:"requestNumber"`
	NotificationDate *string  `json:"notificationDate"`
	DeliveryDate     *string  `json:"deliveryDate"`
	Description      *string  `json:"description"`
	WeightKg         *float64 `json:"weightKg"`
	Expert           *string  `json:"expert"`
	Operator         *string  `json:"operator"`
	WarrantyPP       *string  `json:"warrantyPp"`
	TechOfficeStatus *string  `json:"techOfficeStatus"`
	PurchasingStatus *string  `json:"purchasingStatus"`
	ProductionStatus *string  `json:"productionStatus"`
	InspectionStatus *string  `json:"inspectionStatus"`
	ShipmentDate     *string  `json:"shipmentDate"`
	InvoiceDate      *string  `json:"invoiceDate"`
	PaymentAmount    *float64 `json:"paymentAmount"`
	PaymentDate      *string  `json:"paymentDate"`
	Status           *string  `json:"status"`
	Notes            *string  `json:"notes"`
}

// projectFilters are the optional list filters: status is exact, the
// rest are substring matches (search covers description and internal
// number).
type projectFilters struct {
	Status   string `form:"status"`
	Customer string `form:"customer"`
	Search   string `form:"search"`
	Expert   string `form:"expert"`
}

// GetProjects handles GET /api/projects
// Returns projects matching the optional filters, ordered by internal
// number as the project list view sorts them.
func GetProjects(c *gin.Context) {
	if _, ok := mustCurrentUser(c); !ok {
		return
	}

	var f projectFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := database.GetDB().Model(&models.Project{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Customer != "" {
		query = query.Where("customer LIKE ?", "%"+f.Customer+"%")
	}
	if f.Search != "" {
		query = query.Where("description LIKE ? OR internal_number LIKE ?",
			"%"+f.Search+"%", "%"+f.Search+"%")
	}
	if f.Expert != "" {
		query = query.Where("expert LIKE ?", "%"+f.Expert+"%")
	}

	var projects []models.Project
	if err := query.Order("internal_number ASC").Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
		"filters":  f,
	})
}

// GetProjectByID handles GET /api/projects/:id
func GetProjectByID(c *gin.Context) {
	if _, ok := mustCurrentUser(c); !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var project models.Project
	if err := database.GetDB().First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		}
		return
	}

	c.JSON(http.StatusOK, project)
}

// CreateProject handles POST /api/projects
// The internal number is unique; a duplicate yields 409.
func CreateProject(c *gin.Context) {
	if _, ok := mustCurrentUser(c); !ok {
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var existing models.Project
	if err := db.Where("internal_number = ?", req.InternalNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A project with this internal number already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate internal number"})
		return
	}

	project := models.Project{
		InternalNumber:   req.InternalNumber,
		Customer:         req.Customer,
		RequestNumber:    req.RequestNumber,
		Description:      req.Description,
		WeightKg:         req.WeightKg,
		Expert:           req.Expert,
		Operator:         req.Operator,
		WarrantyPP:       req.WarrantyPP,
		TechOfficeStatus: req.TechOfficeStatus,
		PurchasingStatus: req.PurchasingStatus,
		ProductionStatus: req.ProductionStatus,
		InspectionStatus: req.InspectionStatus,
		PaymentAmount:    req.PaymentAmount,
		Status:           req.Status,
		Notes:            req.Notes,
	}

	var err error
	if project.NotificationDate, err = models.ParseDate(req.NotificationDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notificationDate, expected YYYY-MM-DD"})
		return
	}
	if project.DeliveryDate, err = models.ParseDate(req.DeliveryDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deliveryDate, expected YYYY-MM-DD"})
		return
	}
	if project.ShipmentDate, err = models.ParseDate(req.ShipmentDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipmentDate, expected YYYY-MM-DD"})
		return
	}
	if project.InvoiceDate, err = models.ParseDate(req.InvoiceDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoiceDate, expected YYYY-MM-DD"})
		return
	}
	if project.PaymentDate, err = models.ParseDate(req.PaymentDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paymentDate, expected YYYY-MM-DD"})
		return
	}

	if err := db.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles PUT /api/projects/:id
// Partial update: only supplied keys change.
func UpdateProject(c *gin.Context) {
	if _, ok := mustCurrentUser(c); !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		}
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.InternalNumber != nil && *req.InternalNumber != project.InternalNumber {
		var existing models.Project
		if err := db.Where("internal_number = ?", *req.InternalNumber).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A project with this internal number already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate internal number"})
			return
		}
		project.InternalNumber = *req.InternalNumber
	}
	if req.Customer != nil {
		project.Customer = *req.Customer
	}
	if req.RequestNumber != nil {
		project.RequestNumber = *req.RequestNumber
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.WeightKg != nil {
		project.WeightKg = req.WeightKg
	}
	if req.Expert != nil {
		project.Expert = *req.Expert
	}
	if req.Operator != nil {
		project.Operator = *req.Operator
	}
	if req.WarrantyPP != nil {
		project.WarrantyPP = *req.WarrantyPP
	}
	if req.TechOfficeStatus != nil {
		project.TechOfficeStatus = *req.TechOfficeStatus
	}
	if req.PurchasingStatus != nil {
		project.PurchasingStatus = *req.PurchasingStatus
	}
	if req.ProductionStatus != nil {
		project.ProductionStatus = *req.ProductionStatus
	}
	if req.InspectionStatus != nil {
		project.InspectionStatus = *req.InspectionStatus
	}
	if req.PaymentAmount != nil {
		project.PaymentAmount = req.PaymentAmount
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Notes != nil {
		project.Notes = *req.Notes
	}

	var err error
	if req.NotificationDate != nil {
		if project.NotificationDate, err = models.ParseDate(*req.NotificationDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notificationDate, expected YYYY-MM-DD"})
			return
		}
	}
	if req.DeliveryDate != nil {
		if project.DeliveryDate, err = models.ParseDate(*req.DeliveryDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deliveryDate, expected YYYY-MM-DD"})
			return
		}
	}
	if req.ShipmentDate != nil {
		if project.ShipmentDate, err = models.ParseDate(*req.ShipmentDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipmentDate, expected YYYY-MM-DD"})
			return
		}
	}
	if req.InvoiceDate != nil {
		if project.InvoiceDate, err = models.ParseDate(*req.InvoiceDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoiceDate, expected YYYY-MM-DD"})
			return
		}
	}
	if req.PaymentDate != nil {
		if project.PaymentDate, err = models.ParseDate(*req.PaymentDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paymentDate, expected YYYY-MM-DD"})
			return
		}
	}

	if err := db.Save(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id
// Restricted to admin and boss. Linked tasks keep their project id.
func DeleteProject(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	if !authz.CanDeleteProjects(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete projects"})
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		}
		return
	}

	if err := db.Delete(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"id":      projectID,
	})
}
