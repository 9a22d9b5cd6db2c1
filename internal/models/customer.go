package models

import (
	"strings"
	"time"
)

// Customer represents a customer record. A customer owns its units and
// their workers; deleting a customer removes the whole subtree.
type Customer struct {
	ID                      uint      `json:"id" gorm:"primaryKey"`
	Name                    string    `json:"name" gorm:"not null"`
	ShortName               string    `json:"shortName" gorm:"column:short_name"`
	ProductType             string    `json:"productType" gorm:"column:product_type"`
	OtherProductDescription string    `json:"otherProductDescription" gorm:"column:other_product_description"`
	ProductDescription      string    `json:"productDescription" gorm:"column:product_description"`
	WebsiteURL              string    `json:"websiteUrl" gorm:"column:website_url"`
	RegistrationStatus      string    `json:"registrationStatus" gorm:"column:registration_status"`
	PortalUsername          string    `json:"portalUsername" gorm:"column:portal_username"`
	PortalPassword          string    `json:"portalPassword" gorm:"column:portal_password"`
	LastActionDescription   string    `json:"lastActionDescription" gorm:"column:last_action_description"`
	InquiryPortal           string    `json:"inquiryPortal" gorm:"column:inquiry_portal"`
	Address1                string    `json:"address1"`
	Address2                string    `json:"address2"`
	CreatedAt               time.Time `json:"createdAt"`

	Units []CustomerUnit `json:"units,omitempty" gorm:"-"`
}

// TableName specifies the table name for Customer Model
func (Customer) TableName() string {
	return "customers"
}

// CustomerUnit is an organizational unit belonging to a customer.
// Units are never edited in place: every customer update replaces the
// full set of units and workers.
type CustomerUnit struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CustomerID  uint   `json:"customerId" gorm:"column:customer_id;index"`
	UnitNumber  string `json:"unitNumber" gorm:"column:unit_number"`
	BossName    string `json:"bossName" gorm:"column:boss_name"`
	AdminName   string `json:"adminName" gorm:"column:admin_name"`
	WatcherName string `json:"watcherName" gorm:"column:watcher_name"`

	Workers []CustomerWorker `json:"workers,omitempty" gorm:"-"`
}

// TableName specifies the table name for CustomerUnit Model
func (CustomerUnit) TableName() string {
	return "customer_units"
}

// CustomerWorker is a named worker within a customer unit.
type CustomerWorker struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UnitID uint   `json:"unitId" gorm:"column:unit_id;index"`
	Name   string `json:"name"`
}

// TableName specifies the table name for CustomerWorker Model
func (CustomerWorker) TableName() string {
	return "customer_workers"
}

// SplitWorkerNames normalizes worker entries: each entry may itself be
// a comma-separated list, every name is trimmed, and blanks are
// dropped.
func SplitWorkerNames(entries []string) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		for _, part := range strings.Split(entry, ",") {
			if name := strings.TrimSpace(part); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
