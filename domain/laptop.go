package domain

import (
	"time"

	"github.com/google/uuid"
)

// CREATE TABLE public.laptops (
//     id                      UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//     model_code              TEXT,
//     brand                   TEXT,
//     product_name            TEXT,
//     price_rm                NUMERIC,
//     cpu_benchmark           NUMERIC,
//     gpu_benchmark           NUMERIC,
//     ram_gb                  INT,
//     weight_kg               NUMERIC,
//     battery_capacity_wh     NUMERIC,
//     display_size_inch       NUMERIC,
//     display_resolution      TEXT,
//     stock                   INT DEFAULT 0,
//     created_at              TIMESTAMPTZ DEFAULT NOW()
// );

type Laptop struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ModelCode            string    `gorm:"column:model_code;type:text" json:"model_code"`
	Brand                string    `gorm:"column:brand;type:text" json:"brand"`
	ProductName          string    `gorm:"column:product_name;type:text" json:"product_name"`
	Color                string    `gorm:"column:color;type:text" json:"color"`
	PriceRM              float64   `gorm:"column:price_rm;type:numeric" json:"price_rm"`
	ImageURL             string    `gorm:"column:image_url;type:text" json:"image_url"`
	ProcessorName        string    `gorm:"column:processor_name;type:text" json:"processor_name"`
	ProcessorBrand       string    `gorm:"column:processor_brand;type:text" json:"processor_brand"`
	ProcessorGHz         float64   `gorm:"column:processor_ghz;type:numeric" json:"processor_ghz"`
	CPUBenchmark         float64   `gorm:"column:cpu_benchmark;type:numeric" json:"cpu_benchmark"`
	RAMGB                int       `gorm:"column:ram_gb" json:"ram_gb"`
	RAMType              string    `gorm:"column:ram_type;type:text" json:"ram_type"`
	DisplayType          string    `gorm:"column:display_type;type:text" json:"display_type"`
	DisplayResolution    string    `gorm:"column:display_resolution;type:text" json:"display_resolution"`
	DisplaySizeInch      float64   `gorm:"column:display_size_inch;type:numeric" json:"display_size_inch"`
	DisplayRefreshRateHz int       `gorm:"column:display_refresh_rate_hz" json:"display_refresh_rate_hz"`
	GPUModel             string    `gorm:"column:gpu_model;type:text" json:"gpu_model"`
	GPUBrand             string    `gorm:"column:gpu_brand;type:text" json:"gpu_brand"`
	GPUBenchmark         float64   `gorm:"column:gpu_benchmark;type:numeric" json:"gpu_benchmark"`
	SSDGB                int       `gorm:"column:ssd_gb" json:"ssd_gb"`
	SSDType              string    `gorm:"column:ssd_type;type:text" json:"ssd_type"`
	WeightKg             float64   `gorm:"column:weight_kg;type:numeric" json:"weight_kg"`
	BatteryCapacityWh    float64   `gorm:"column:battery_capacity_wh;type:numeric" json:"battery_capacity_wh"`
	Stock                int       `gorm:"column:stock;default:0" json:"stock"`
	CreatedAt            time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Laptop) TableName() string {
	return "laptops"
}
