package models

import "time"

// Project represents an engineering project. Tasks may reference a
// project through their project_id; the link is optional and survives
// project deletion as a dangling id.
type Project struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	InternalNumber   string     `json:"internalNumber" gorm:"column:internal_number;unique;index"`
	Customer         string     `json:"customer" gorm:"index"`
	RequestNumber    string     `json:"requestNumber" gorm:"column:request_number"`
	NotificationDate *time.Time `json:"notificationDate" gorm:"column:notification_date"`
	DeliveryDate     *time.Time `json:"deliveryDate" gorm:"column:delivery_date"`
	Description      string     `json:"description" gorm:"not null"`
	WeightKg         *float64   `json:"weightKg" gorm:"column:weight_kg"`
	Expert           string     `json:"expert"`
	Operator         string     `json:"operator"`
	WarrantyPP       string     `json:"warrantyPp" gorm:"column:warranty_pp"`
	TechOfficeStatus string     `json:"techOfficeStatus" gorm:"column:tech_office_status"`
	PurchasingStatus string     `json:"purchasingStatus" gorm:"column:purchasing_status"`
	ProductionStatus string     `json:"productionStatus" gorm:"column:production_status"`
	InspectionStatus string     `json:"inspectionStatus" gorm:"column:inspection_status"`
	ShipmentDate     *time.Time `json:"shipmentDate" gorm:"column:shipment_date"`
	InvoiceDate      *time.Time `json:"invoiceDate" gorm:"column:invoice_date"`
	PaymentAmount    *float64   `json:"paymentAmount" gorm:"column:payment_amount"`
	PaymentDate      *time.Time `json:"paymentDate" gorm:"column:payment_date"`
	Status           string     `json:"status" gorm:"not null;index"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
