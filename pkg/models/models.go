package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypeFallDetected NotificationType = "FALL_DETECTED"
)

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusCreated            NotificationStatus = "CREATED"
	NotificationStatusDispatching        NotificationStatus = "DISPATCHING"
	NotificationStatusDelivered          NotificationStatus = "DELIVERED"
	NotificationStatusPartiallyDelivered NotificationStatus = "PARTIALLY_DELIVERED"
	NotificationStatusFailed             NotificationStatus = "FAILED"
)

type RecipientRole string

const (
	RecipientRoleCaretaker RecipientRole = "CARETAKER"
	RecipientRoleAdmin     RecipientRole = "ADMIN"
)

type AttemptResult string

const (
	AttemptResultDelivered    AttemptResult = "delivered"
	AttemptResultInvalidToken AttemptResult = "invalid_token"
	AttemptResultOtherError   AttemptResult = "other_error"
)

type UserRole string

const (
	UserRoleElderly   UserRole = "elderly"
	UserRoleCaretaker UserRole = "caretaker"
)

type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWeb     Platform = "web"
)

// CheckIn is the daily wellbeing record of a monitored person. Day is the
// local calendar date in the configured zone and keys the one-per-day rule.
type CheckIn struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PersonID   string    `gorm:"uniqueIndex:idx_check_ins_person_day;not null" json:"elderly_id"`
	Day        string    `gorm:"uniqueIndex:idx_check_ins_person_day;type:varchar(10);not null" json:"day"`
	Summary    string    `json:"summary"`
	Priority   int       `json:"priority"`
	Mood       int       `json:"mood"`
	Status     string    `json:"status"`
	Transcript *string   `json:"transcript"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`

	CreatedAtLocal string `gorm:"-" json:"created_at_local"`
	UpdatedAtLocal string `gorm:"-" json:"updated_at_local"`
}

type Notification struct {
	ID            string             `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Type          NotificationType   `gorm:"type:varchar(32);not null" json:"type"`
	SubjectID     string             `gorm:"index;not null" json:"elderlyId"`
	SubjectName   string             `json:"elderlyName"`
	Severity      Severity           `gorm:"type:varchar(10);not null" json:"priority"`
	Title         string             `gorm:"not null" json:"title"`
	Message       string             `gorm:"not null" json:"message"`
	Data          datatypes.JSONMap  `json:"data"`
	Status        NotificationStatus `gorm:"type:varchar(24);not null" json:"status"`
	FailureReason string             `gorm:"type:varchar(32)" json:"failureReason,omitempty"`
	CreatedAt     time.Time          `gorm:"index" json:"timestamp"`
	UpdatedAt     time.Time          `json:"updatedAt"`

	Recipients []Recipient `gorm:"foreignKey:NotificationID;references:ID;constraint:OnDelete:CASCADE" json:"recipients"`
}

type Recipient struct {
	ID                uint                        `gorm:"primaryKey" json:"-"`
	NotificationID    string                      `gorm:"uniqueIndex:idx_recipients_notification_user;type:varchar(36);not null" json:"-"`
	Position          int                         `json:"-"`
	UserID            string                      `gorm:"uniqueIndex:idx_recipients_notification_user;index;not null" json:"userId"`
	Role              RecipientRole               `gorm:"type:varchar(16);not null" json:"role"`
	DeviceTokens      datatypes.JSONSlice[string] `json:"deviceTokens"`
	DeliveryAttempted bool                        `gorm:"not null;default:false" json:"notificationSent"`
	ReadAt            *time.Time                  `json:"readTimestamp,omitempty"`
}

func (Recipient) TableName() string {
	return "notification_recipients"
}

type DeliveryAttempt struct {
	ID             uint          `gorm:"primaryKey"`
	NotificationID string        `gorm:"index;type:varchar(36);not null"`
	Token          string        `gorm:"not null"`
	Result         AttemptResult `gorm:"type:varchar(16);check:result IN ('delivered','invalid_token','other_error')"`
	Error          string
	CreatedAt      time.Time
}

type RegisteredDevice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_devices_user_token;not null" json:"userId"`
	Token     string    `gorm:"uniqueIndex:idx_devices_user_token;not null" json:"deviceToken"`
	Platform  Platform  `gorm:"type:varchar(10);check:platform IN ('android','ios','web')" json:"deviceType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type User struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Role        UserRole  `gorm:"type:varchar(16);index;check:role IN ('elderly','caretaker')" json:"role"`
	CaretakerID *string   `gorm:"index" json:"caretakerId,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type DeviceStatus struct {
	DeviceID     string    `gorm:"primaryKey" json:"deviceId"`
	BatteryLevel *float64  `json:"batteryLevel,omitempty"`
	WifiStrength *float64  `json:"wifiStrength,omitempty"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	ReportedAt   string    `json:"timestamp,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func All() []any {
	return []any{
		&User{},
		&RegisteredDevice{},
		&CheckIn{},
		&Notification{},
		&Recipient{},
		&DeliveryAttempt{},
		&DeviceStatus{},
	}
}
