package main

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		lastname      TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT false,
		role_id       INTEGER NOT NULL DEFAULT 3,
		avatar_url    TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS deals (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		address       TEXT NOT NULL DEFAULT '',
		city          TEXT NOT NULL DEFAULT '',
		property_type TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'Screening'
			CHECK (status IN ('Screening', 'Due Diligence', 'Negotiation', 'Closing', 'Closed', 'Dead')),
		priority      TEXT NOT NULL DEFAULT ''
			CHECK (priority IN ('High', 'Medium', 'Low', '')),
		price         DOUBLE PRECISION NOT NULL DEFAULT 0,
		cap_rate      DOUBLE PRECISION NOT NULL DEFAULT 0,
		irr           DOUBLE PRECISION NOT NULL DEFAULT 0,
		location      TEXT NOT NULL DEFAULT '',
		notes         TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_status ON deals (status)`,
	`CREATE TABLE IF NOT EXISTS valuations (
		id              TEXT PRIMARY KEY,
		deal_id         BIGINT REFERENCES deals (id) ON DELETE SET NULL,
		name            TEXT NOT NULL,
		property_value  DOUBLE PRECISION NOT NULL,
		annual_income   DOUBLE PRECISION NOT NULL,
		annual_expenses DOUBLE PRECISION NOT NULL,
		cap_rate        DOUBLE PRECISION NOT NULL,
		assumptions     JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_by      INTEGER NOT NULL REFERENCES users (id),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_valuations_deal_id ON valuations (deal_id)`,
}

type seedDeal struct {
	Name         string
	Address      string
	City         string
	PropertyType string
	Status       string
	Priority     string
	Price        float64
	CapRate      float64
	IRR          float64
}

var seedDeals = []seedDeal{
	{"Harbor Point Logistics", "1 Harbor Way", "Boston", "Industrial", "Screening", "High", 12500000, 6.2, 14.1},
	{"Midtown Office Tower", "350 5th Ave", "New York", "Office", "Screening", "Medium", 48000000, 5.1, 11.3},
	{"Sunset Retail Plaza", "8800 Sunset Blvd", "Los Angeles", "Retail", "Due Diligence", "Low", 9200000, 7.4, 12.8},
	{"Lakeview Apartments", "200 Lake Shore Dr", "Chicago", "Multifamily", "Due Diligence", "High", 31000000, 5.6, 13.5},
	{"Riverside Flex Park", "45 River Rd", "Austin", "Industrial", "Negotiation", "Medium", 15750000, 6.8, 15.2},
	{"Peachtree Medical Center", "1100 Peachtree St", "Atlanta", "Office", "Closing", "High", 22400000, 6.9, 12.2},
	{"Desert Storage Portfolio", "77 Camelback Rd", "Phoenix", "Self Storage", "Closed", "", 6800000, 7.8, 16.4},
	{"Old Mill Hotel", "12 Mill St", "Denver", "Hospitality", "Dead", "Low", 18300000, 8.5, 9.1},
}
