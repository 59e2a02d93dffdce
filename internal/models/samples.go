// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// samples.go holds the fixed dataset served while the remote database is
// unreachable (offline mode). The sample functions return fresh copies so
// callers can never mutate the canonical data.
package models

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Placeholder ids returned by write operations in offline mode.
const (
	OfflineStoreID    = "offline-store-id"
	OfflineCategoryID = "offline-category-id"
	OfflineReviewID   = "offline-review-id"
	OfflineUserID     = "offline-user-id"
	OfflineSettingsID = "offline-settings-id"
)

// Well-known sample account credentials, seeded for development and served
// in offline mode.
const (
	SampleAdminEmail    = "admin@mongolshop.mn"
	SampleAdminPassword = "admin123"
	SampleUserEmail     = "user@mongolshop.mn"
	SampleUserPassword  = "user123"
)

// SampleStores returns the offline store dataset.
func SampleStores() []Store {
	now := time.Now().UnixMilli()
	return []Store{
		{
			ID:          "store1",
			Name:        "Шангри-Ла Молл",
			Slug:        "shangri-la-moll",
			Category:    "Худалдааны төв",
			Rating:      4.5,
			Reviews:     120,
			Image:       "/shangri-la-mall-ulaanbaatar-exterior.png",
			Description: "Улаанбаатар хотын хамгийн орчин үеийн худалдааны төв",
			Address:     "Сүхбаатарын талбай, Улаанбаатар",
			Phone:       "+976 7700 8877",
			Hours:       "10:00 - 22:00",
			Website:     "https://shangrila.mn",
			CreatedAt:   now - 1000000,
			UpdatedAt:   now - 10000,
		},
		{
			ID:          "store2",
			Name:        "Улсын их дэлгүүр",
			Slug:        "ulsyn-ikh-delguur",
			Category:    "Их дэлгүүр",
			Rating:      4.2,
			Reviews:     85,
			Image:       "/ulaanbaatar-state-department-store.png",
			Description: "Монголын хамгийн том уламжлалт их дэлгүүр",
			Address:     "Сүхбаатарын гудамж, Улаанбаатар",
			Phone:       "+976 1100 2233",
			Hours:       "09:00 - 21:00",
			Website:     "https://uidstore.mn",
			CreatedAt:   now - 2000000,
			UpdatedAt:   now - 20000,
		},
		{
			ID:          "store3",
			Name:        "Номин Супермаркет",
			Slug:        "nomin-supyermarkyet",
			Category:    "Супермаркет",
			Rating:      4.0,
			Reviews:     65,
			Image:       "/nomin-supermarket-aisle.png",
			Description: "Өргөн хэрэглээний бараа, хүнсний бүтээгдэхүүний дэлгүүр",
			Address:     "Баянзүрх дүүрэг, Улаанбаатар",
			Phone:       "+976 7711 4455",
			Hours:       "08:00 - 23:00",
			Website:     "https://nomin.mn",
			CreatedAt:   now - 3000000,
			UpdatedAt:   now - 30000,
		},
		{
			ID:          "store4",
			Name:        "Улаанбаатар Бутик",
			Slug:        "ulaanbaatar-butik",
			Category:    "Хувцас",
			Rating:      4.7,
			Reviews:     42,
			Image:       "/ulaanbaatar-boutique.png",
			Description: "Орчин үеийн загварлаг хувцасны дэлгүүр",
			Address:     "Чингэлтэй дүүрэг, Улаанбаатар",
			Phone:       "+976 9900 1122",
			Hours:       "10:00 - 20:00",
			Website:     "https://ubboutique.mn",
			CreatedAt:   now - 4000000,
			UpdatedAt:   now - 40000,
		},
	}
}

// SampleCategories returns the offline category dataset.
func SampleCategories() []Category {
	now := time.Now().UnixMilli()
	return []Category{
		{
			ID:          "cat1",
			Name:        "Худалдааны төв",
			Slug:        "khudaldaany-tov",
			Description: "Олон төрлийн дэлгүүр, үйлчилгээ нэг дор",
			StoreCount:  5,
			CreatedAt:   now - 5000000,
			UpdatedAt:   now - 50000,
		},
		{
			ID:          "cat2",
			Name:        "Супермаркет",
			Slug:        "supyermarkyet",
			Description: "Хүнсний болон өргөн хэрэглээний бараа",
			StoreCount:  8,
			CreatedAt:   now - 6000000,
			UpdatedAt:   now - 60000,
		},
		{
			ID:          "cat3",
			Name:        "Хувцас",
			Slug:        "khuvtsas",
			Description: "Загварлаг хувцас, гутал, гоёл чимэглэл",
			StoreCount:  12,
			CreatedAt:   now - 7000000,
			UpdatedAt:   now - 70000,
		},
		{
			ID:          "cat4",
			Name:        "Цахилгаан бараа",
			Slug:        "tsakhilgaan-baraa",
			Description: "Цахилгаан хэрэгсэл, компьютер, гар утас",
			StoreCount:  6,
			CreatedAt:   now - 8000000,
			UpdatedAt:   now - 80000,
		},
	}
}

// SampleReviews returns the offline review dataset.
func SampleReviews() []Review {
	now := time.Now().UnixMilli()
	return []Review{
		{
			ID:        "review1",
			Name:      "Болд Баатар",
			Store:     "Шангри-Ла Молл",
			StoreID:   "store1",
			Rating:    5,
			Comment:   "Маш сайхан худалдааны төв. Олон төрлийн дэлгүүр, ресторан байдаг. Цэвэрхэн, тухтай.",
			Date:      "2023-05-15",
			CreatedAt: now - 100000,
		},
		{
			ID:        "review2",
			Name:      "Сараа Дорж",
			Store:     "Улсын их дэлгүүр",
			StoreID:   "store2",
			Rating:    4,
			Comment:   "Уламжлалт их дэлгүүр, олон төрлийн бараа бүтээгдэхүүн байдаг. Гэхдээ зарим үед хүн их байдаг.",
			Date:      "2023-06-20",
			CreatedAt: now - 200000,
		},
		{
			ID:        "review3",
			Name:      "Баяр Лхагва",
			Store:     "Номин Супермаркет",
			StoreID:   "store3",
			Rating:    4,
			Comment:   "Үнэ хямд, барааны сонголт сайтай. Ажилчид эелдэг, үйлчилгээ сайн.",
			Date:      "2023-07-10",
			CreatedAt: now - 300000,
		},
		{
			ID:        "review4",
			Name:      "Оюун Бат",
			Store:     "Улаанбаатар Бутик",
			StoreID:   "store4",
			Rating:    5,
			Comment:   "Загварлаг хувцас, чанартай материал. Үнэ өндөр ч чанартай.",
			Date:      "2023-08-05",
			CreatedAt: now - 400000,
		},
		{
			ID:        "review5",
			Name:      "Төгөлдөр Ганбат",
			Store:     "Шангри-Ла Молл",
			StoreID:   "store1",
			Rating:    4,
			Comment:   "Байршил сайтай, олон төрлийн үйлчилгээ нэг дор. Зогсоол хязгаарлагдмал.",
			Date:      "2023-09-12",
			CreatedAt: now - 500000,
		},
		{
			ID:        "review6",
			Name:      "Нарангэрэл Бат",
			Store:     "Улсын их дэлгүүр",
			StoreID:   "store2",
			Rating:    3,
			Comment:   "Уламжлалт дэлгүүр, гэхдээ шинэчлэл хийх шаардлагатай. Үйлчилгээ дунд зэрэг.",
			Date:      "2023-10-18",
			CreatedAt: now - 600000,
		},
	}
}

// sampleHash hashes the fixed sample passwords once. MinCost keeps offline
// logins fast; these accounts hold no real data.
var sampleHash = sync.OnceValues(func() (string, string) {
	admin, err := bcrypt.GenerateFromPassword([]byte(SampleAdminPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	user, err := bcrypt.GenerateFromPassword([]byte(SampleUserPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(admin), string(user)
})

// SampleUsers returns the offline user dataset. Passwords are bcrypt-hashed
// like real accounts.
func SampleUsers() []User {
	adminHash, userHash := sampleHash()
	return []User{
		{
			ID:           "user1",
			Name:         "Админ",
			Email:        SampleAdminEmail,
			Role:         RoleAdmin,
			Status:       StatusActive,
			PasswordHash: adminHash,
			CreatedAt:    "2023-01-01",
		},
		{
			ID:           "user2",
			Name:         "Хэрэглэгч",
			Email:        SampleUserEmail,
			Role:         RoleUser,
			Status:       StatusActive,
			PasswordHash: userHash,
			CreatedAt:    "2023-02-15",
		},
	}
}

// SampleSettings returns the offline site settings record.
func SampleSettings() SiteSettings {
	now := time.Now().UnixMilli()
	s := DefaultSettings()
	s.ID = "settings1"
	s.CreatedAt = now - 9000000
	s.UpdatedAt = now - 90000
	return s
}
