package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращается при replace/delete несуществующей записи
var ErrNotFound = errors.New("not found")

// ErrLimitExceeded возвращается, когда запись превысила бы дневной лимит
var ErrLimitExceeded = errors.New("daily limit exceeded")

// Food - позиция каталога; нутриенты указаны на 100 г, nil означает "неизвестно"
type Food struct {
	ID             int64
	Name           string
	NameNormalized string
	CaloriesKcal   *float64
	ProteinG       *float64
	FatG           *float64
	CarbsG         *float64
	FiberG         *float64
	SugarG         *float64
	SodiumMg       *float64
	CalciumMg      *float64
	IronMg         *float64
	VitaminCMg     *float64
	VitaminB11Mg   *float64
}

// FoodUpsert is one catalog row produced by the importer. Keyed by NameNormalized.
type FoodUpsert struct {
	Name           string
	NameNormalized string
	CaloriesKcal   *float64
	ProteinG       *float64
	FatG           *float64
	CarbsG         *float64
	FiberG         *float64
	SugarG         *float64
	SodiumMg       *float64
	CalciumMg      *float64
	IronMg         *float64
	VitaminCMg     *float64
	VitaminB11Mg   *float64
}

// CatalogStorage - доступ к каталогу продуктов
type CatalogStorage interface {
	// GetFood возвращает продукт по ID (nil, nil если не найден)
	GetFood(ctx context.Context, id int64) (*Food, error)

	// GetFoods возвращает все найденные продукты одним чтением
	GetFoods(ctx context.Context, ids []int64) (map[int64]Food, error)

	// SearchSubstring - поиск по вхождению в name_normalized, порядок по id
	SearchSubstring(ctx context.Context, term string, limit int) ([]Food, error)

	// SearchPrefix - каждый токен запроса должен быть префиксом токена имени
	SearchPrefix(ctx context.Context, term string, limit int) ([]Food, error)

	// UpsertFoods вставляет или обновляет продукты по name_normalized
	UpsertFoods(ctx context.Context, foods []FoodUpsert) (inserted int, updated int, err error)

	CountFoods(ctx context.Context) (int, error)
}

// Entry - запись дневника питания
type Entry struct {
	ID          uuid.UUID
	OwnerUserID string
	Date        string // YYYY-MM-DD
	MealType    string
	FoodID      int64
	QuantityG   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntriesStorage - дневник питания, все операции в рамках owner_user_id
type EntriesStorage interface {
	CreateEntry(ctx context.Context, entry *Entry) error

	GetEntry(ctx context.Context, ownerUserID string, id uuid.UUID) (*Entry, error)

	// ReplaceEntry полностью заменяет запись; ErrNotFound если её нет
	ReplaceEntry(ctx context.Context, entry *Entry) error

	DeleteEntry(ctx context.Context, ownerUserID string, id uuid.UUID) error

	ListEntriesByDate(ctx context.Context, ownerUserID string, date string) ([]Entry, error)

	// ListEntriesRange returns entries with from <= date <= to, ordered by date then creation.
	ListEntriesRange(ctx context.Context, ownerUserID string, from, to string) ([]Entry, error)
}

// BodyProfile - биометрия и цели пользователя, одна на owner_user_id
type BodyProfile struct {
	OwnerUserID    string
	Gender         string
	Age            int
	HeightCm       float64
	WeightKg       float64
	BodyFatPct     *float64
	Goal           string
	ActivityLevel  string
	TargetWeightKg *float64
	MedicalHistory *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type BodyProfileUpsert struct {
	Gender         string
	Age            int
	HeightCm       float64
	WeightKg       float64
	BodyFatPct     *float64
	Goal           string
	ActivityLevel  string
	TargetWeightKg *float64
	MedicalHistory *string
}

type BodyProfilesStorage interface {
	// GetBodyProfile возвращает профиль (nil, nil если не создан)
	GetBodyProfile(ctx context.Context, ownerUserID string) (*BodyProfile, error)

	UpsertBodyProfile(ctx context.Context, ownerUserID string, upsert BodyProfileUpsert) (*BodyProfile, error)
}

// WaterStorage - учёт выпитой воды по дням
type WaterStorage interface {
	// AddWater atomically checks the day total against maxDailyMl (<= 0 means
	// no cap) and records amountMl. It returns the new total, or the unchanged
	// total with ErrLimitExceeded.
	AddWater(ctx context.Context, ownerUserID string, date string, amountMl int, maxDailyMl int) (int, error)

	// GetWaterDaily возвращает сумму мл за день (0 если записей нет)
	GetWaterDaily(ctx context.Context, ownerUserID string, date string) (int, error)

	ResetWater(ctx context.Context, ownerUserID string, date string) error
}

// Storage объединяет все хранилища
type Storage interface {
	Catalog() CatalogStorage
	Entries() EntriesStorage
	BodyProfiles() BodyProfilesStorage
	Water() WaterStorage

	Ping(ctx context.Context) error

	// Close закрывает соединение (для Postgres)
	Close() error
}
