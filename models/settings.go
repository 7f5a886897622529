package models

import "time"

// SettingsID is the fixed _id of the single settings document.
const SettingsID = "contact"

type Settings struct {
	ID               string     `bson:"_id,omitempty" json:"-"`
	WhatsappNumber   string     `bson:"whatsappNumber" json:"whatsappNumber"`
	TelegramUsername string     `bson:"telegramUsername" json:"telegramUsername"`
	UpdatedAt        *time.Time `bson:"updatedAt,omitempty" json:"-"`
}

// DefaultSettings is what readers see before the first save.
func DefaultSettings() *Settings {
	return &Settings{}
}

// UploadedImage describes an object written to the image bucket.
type UploadedImage struct {
	URL         string `json:"url"`
	ObjectName  string `json:"objectName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}
