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

// CustomerUnitRequest is one unit of the customer's org structure.
// Worker name entries may themselves be comma-separated lists; they
// are trimmed and blanks are dropped on insert.
type CustomerUnitRequest struct {
	UnitNumber  string   `json:"unitNumber"`
	BossName    string   `json:"bossName"`
	AdminName   string   `json:"adminName"`
	WatcherName string   `json:"watcherName"`
	WorkerNames []string `json:"workerNames"`
}

// CustomerRequest carries the customer fields plus the full unit set.
// Units are always a full replacement, never a diff.
type CustomerRequest struct {
	Name                    string                `json:"name" binding:"required"`
	ShortName               string                `json:"shortName"`
	ProductType             string                `json:"productType"`
	OtherProductDescription string                `json:"otherProductDescription"`
	ProductDescription      string                `json:"productDescription"`
	WebsiteURL              string                `json:"websiteUrl"`
	RegistrationStatus      string                `json:"registrationStatus"`
	PortalUsername          string                `json:"portalUsername"`
	PortalPassword          string                `json:"portalPassword"`
	LastActionDescription   string                `json:"lastActionDescription"`
	InquiryPortal           string                `json:"inquiryPortal"`
	Address1                string                `json:"address1"`
	Address2                string                `json:"address2"`
	Units                   []CustomerUnitRequest `json:"units"`
}

// customerFilters are the optional list filters: name search is a
// substring match, the other two are exact.
type customerFilters struct {
	Search             string `form:"search"`
	ProductType        string `form:"product_type"`
	RegistrationStatus string `form:"registration_status"`
}

func applyCustomerFields(customer *models.Customer, req CustomerRequest) {
	customer.Name = req.Name
	customer.ShortName = req.ShortName
	customer.ProductType = req.ProductType
	customer.OtherProductDescription = req.OtherProductDescription
	customer.ProductDescription = req.ProductDescription
	customer.WebsiteURL = req.WebsiteURL
	customer.RegistrationStatus = req.RegistrationStatus
	customer.PortalUsername = req.PortalUsername
	customer.PortalPassword = req.PortalPassword
	customer.LastActionDescription = req.LastActionDescription
	customer.InquiryPortal = req.InquiryPortal
	customer.Address1 = req.Address1
	customer.Address2 = req.Address2
}

// insertUnits creates one unit row per request entry, in input order,
// and one worker row per non-blank worker name.
func insertUnits(tx *gorm.DB, customerID uint, units []CustomerUnitRequest) error {
	for _, in := range units {
		unit := models.CustomerUnit{
			CustomerID:  customerID,
			UnitNumber:  in.UnitNumber,
			BossName:    in.BossName,
			AdminName:   in.AdminName,
			WatcherName: in.WatcherName,
		}
		if err := tx.Create(&unit).Error; err != nil {
			return err
		}
		for _, name := range models.SplitWorkerNames(in.WorkerNames) {
			worker := models.CustomerWorker{UnitID: unit.ID, Name: name}
			if err := tx.Create(&worker).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// deleteUnits removes every worker and unit belonging to the customer.
// Cascade is explicit: workers first, then units.
func deleteUnits(tx *gorm.DB, customerID uint) error {
	unitIDs := tx.Model(&models.CustomerUnit{}).Select("id").Where("customer_id = ?", customerID)
	if err := tx.Where("unit_id IN (?)", unitIDs).Delete(&models.CustomerWorker{}).Error; err != nil {
		return err
	}
	return tx.Where("customer_id = ?", customerID).Delete(&models.CustomerUnit{}).Error
}

// loadUnits attaches the customer's units and their workers.
func loadUnits(db *gorm.DB, customer *models.Customer) error {
	var units []models.CustomerUnit
	if err := db.Where("customer_id = ?", customer.ID).Order("id ASC").Find(&units).Error; err != nil {
		return err
	}
	for i := range units {
		if err := db.Where("unit_id = ?", units[i].ID).Order("id ASC").
			Find(&units[i].Workers).Error; err != nil {
			return err
		}
	}
	customer.Units = units
	return nil
}

// GetCustomers handles GET /api/customers
// Customer records are boss-only, list included.
func GetCustomers(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	if !authz.CanManageCustomers(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view customers"})
		return
	}

	var f customerFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := database.GetDB().Model(&models.Customer{})
	if f.Search != "" {
		query = query.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.ProductType != "" {
		query = query.Where("product_type = ?", f.ProductType)
	}
	if f.RegistrationStatus != "" {
		query = query.Where("registration_status = ?", f.RegistrationStatus)
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
		"filters":   f,
	})
}

// GetCustomerByID handles GET /api/customers/:id
// Returns the customer with its units and workers.
func GetCustomerByID(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	if !authz.CanManageCustomers(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view customers"})
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()
	var customer models.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
		}
		return
	}
	if err := loadUnits(db, &customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer units"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles POST /api/customers
// Creates the customer and its unit/worker subtree in one transaction.
func CreateCustomer(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	if !authz.CanManageCustomers(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to manage customers"})
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var customer models.Customer
	applyCustomerFields(&customer, req)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		return insertUnits(tx, customer.ID, req.Units)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	if err := loadUnits(db, &customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer units"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /api/customers/:id
// Replaces the customer fields and the entire unit/worker subtree in
// one transaction. Prior unit identities are never preserved, even if
// a unit is unchanged in content.
func UpdateCustomer(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	if !authz.CanManageCustomers(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to manage customers"})
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()
	var customer models.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
		}
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applyCustomerFields(&customer, req)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		if err := deleteUnits(tx, customer.ID); err != nil {
			return err
		}
		return insertUnits(tx, customer.ID, req.Units)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	if err := loadUnits(db, &customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer units"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/customers/:id
// Cascade is explicit and transactional: workers, then units, then the
// customer row.
func DeleteCustomer(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	if !authz.CanManageCustomers(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to manage customers"})
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()
	var customer models.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
		}
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := deleteUnits(tx, customer.ID); err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted successfully",
		"id":      customerID,
	})
}
