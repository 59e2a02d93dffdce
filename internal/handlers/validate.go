package handlers

import (
	"strings"
	"unicode/utf8"

	"mongolshop/internal/models"
)

// Validation limits for directory and review fields.
const (
	maxNameLen        = 200
	maxDescriptionLen = 1_000
	maxFullDescLen    = 20_000
	maxAddressLen     = 500
	maxCommentLen     = 2_000
	maxEmailLen       = 320
	maxPasswordLen    = 200
	minPasswordLen    = 6
)

// validateStore checks store inputs and returns the first error found.
func validateStore(s *models.Store) string {
	if strings.TrimSpace(s.Name) == "" {
		return "Дэлгүүрийн нэр шаардлагатай."
	}
	if utf8.RuneCountInString(s.Name) > maxNameLen {
		return "Дэлгүүрийн нэр хэт урт байна (дээд тал нь 200 тэмдэгт)."
	}
	if strings.TrimSpace(s.Category) == "" {
		return "Ангилал шаардлагатай."
	}
	if utf8.RuneCountInString(s.Description) > maxDescriptionLen {
		return "Тайлбар хэт урт байна (дээд тал нь 1,000 тэмдэгт)."
	}
	if utf8.RuneCountInString(s.FullDescription) > maxFullDescLen {
		return "Дэлгэрэнгүй тайлбар хэт урт байна (дээд тал нь 20,000 тэмдэгт)."
	}
	if utf8.RuneCountInString(s.Address) > maxAddressLen {
		return "Хаяг хэт урт байна (дээд тал нь 500 тэмдэгт)."
	}
	return ""
}

// validateCategory checks category inputs and returns the first error found.
func validateCategory(c *models.Category) string {
	if strings.TrimSpace(c.Name) == "" {
		return "Ангиллын нэр шаардлагатай."
	}
	if utf8.RuneCountInString(c.Name) > maxNameLen {
		return "Ангиллын нэр хэт урт байна (дээд тал нь 200 тэмдэгт)."
	}
	if utf8.RuneCountInString(c.Description) > maxDescriptionLen {
		return "Тайлбар хэт урт байна (дээд тал нь 1,000 тэмдэгт)."
	}
	return ""
}

// validateReview checks visitor review inputs and returns the first error found.
func validateReview(v *models.Review) string {
	if strings.TrimSpace(v.Name) == "" {
		return "Нэр шаардлагатай."
	}
	if v.StoreID == "" {
		return "Дэлгүүр сонгоогүй байна."
	}
	if v.Rating < 1 || v.Rating > 5 {
		return "Үнэлгээ 1-5 хооронд байх ёстой."
	}
	if strings.TrimSpace(v.Comment) == "" {
		return "Сэтгэгдэл шаардлагатай."
	}
	if utf8.RuneCountInString(v.Comment) > maxCommentLen {
		return "Сэтгэгдэл хэт урт байна (дээд тал нь 2,000 тэмдэгт)."
	}
	return ""
}

// validateCredentials checks registration inputs and returns the first error found.
func validateCredentials(name, email, password string) string {
	if strings.TrimSpace(name) == "" {
		return "Нэр шаардлагатай."
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") || utf8.RuneCountInString(email) > maxEmailLen {
		return "Имэйл хаяг буруу байна."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Нууц үг дор хаяж 6 тэмдэгт байх ёстой."
	}
	if utf8.RuneCountInString(password) > maxPasswordLen {
		return "Нууц үг хэт урт байна."
	}
	return ""
}
