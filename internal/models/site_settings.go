// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SiteSettings is the singleton-per-install site configuration record.
type SiteSettings struct {
	ID                 string `json:"id" bson:"_id,omitempty"`
	SiteName           string `json:"siteName" bson:"siteName"`
	SiteURL            string `json:"siteUrl" bson:"siteUrl"`
	SiteDescription    string `json:"siteDescription" bson:"siteDescription"`
	ContactEmail       string `json:"contactEmail" bson:"contactEmail"`
	ContactPhone       string `json:"contactPhone" bson:"contactPhone"`
	Logo               string `json:"logo,omitempty" bson:"logo,omitempty"`
	Favicon            string `json:"favicon,omitempty" bson:"favicon,omitempty"`
	LogoURL            string `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	PrimaryColor       string `json:"primaryColor,omitempty" bson:"primaryColor,omitempty"`
	ShowFeaturedStores bool   `json:"showFeaturedStores" bson:"showFeaturedStores"`
	ShowLatestReviews  bool   `json:"showLatestReviews" bson:"showLatestReviews"`
	ShowNewsletter     bool   `json:"showNewsletter" bson:"showNewsletter"`
	DarkMode           bool   `json:"darkMode" bson:"darkMode"`
	Animations         bool   `json:"animations" bson:"animations"`
	CreatedAt          int64  `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt          int64  `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// DefaultSettings returns the install-time configuration used when no
// settings record exists yet.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		SiteName:           "МонголШоп",
		SiteURL:            "https://mongolshop.mn",
		SiteDescription:    "Монголын шилдэг дэлгүүрүүдийн мэдээлэл, үнэлгээ болон сэтгэгдэлүүдийг нэг дороос харах вэбсайт",
		ContactEmail:       "info@mongolshop.mn",
		ContactPhone:       "+976 9911 2233",
		ShowFeaturedStores: true,
		ShowLatestReviews:  true,
		ShowNewsletter:     true,
		DarkMode:           false,
		Animations:         true,
	}
}
