package dto

import "strings"

// SaveSettingsDTO replaces both contact fields. A missing field is saved as
// an empty string.
type SaveSettingsDTO struct {
	WhatsappNumber   string `json:"whatsappNumber" binding:"max=64"`
	TelegramUsername string `json:"telegramUsername" binding:"max=64"`
}

func (d SaveSettingsDTO) Normalized() (whatsapp, telegram string) {
	return strings.TrimSpace(d.WhatsappNumber), strings.TrimSpace(d.TelegramUsername)
}
