// pkg/db/schema.go
package db

// Schema is the DDL for all tables, applied by cmd/migrate.
// Statements are idempotent so the migration can be re-run safely.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT NOT NULL UNIQUE,
    role        TEXT NOT NULL DEFAULT 'user',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS wallets (
    id          BIGSERIAL PRIMARY KEY,
    user_id     BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
    balance     NUMERIC(20, 4) NOT NULL DEFAULT 0 CHECK (balance >= 0),
    currency    TEXT NOT NULL DEFAULT 'EUR',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_wallets_user ON wallets (user_id);

CREATE TABLE IF NOT EXISTS vendors (
    id          BIGSERIAL PRIMARY KEY,
    user_id     BIGINT REFERENCES users(id) ON DELETE SET NULL,
    name        TEXT NOT NULL,
    location    TEXT,
    longitude   DOUBLE PRECISION,
    latitude    DOUBLE PRECISION,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_vendors_user ON vendors (user_id);

CREATE TABLE IF NOT EXISTS items (
    id                BIGSERIAL PRIMARY KEY,
    vendor_id         BIGINT REFERENCES vendors(id) ON DELETE SET NULL,
    name              TEXT NOT NULL,
    price             NUMERIC(20, 4) NOT NULL DEFAULT 0,
    popularity_count  BIGINT NOT NULL DEFAULT 0,
    metadata          TEXT,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_items_vendor ON items (vendor_id);

CREATE TABLE IF NOT EXISTS transactions (
    id                BIGSERIAL PRIMARY KEY,
    reference         UUID NOT NULL UNIQUE,
    source_wallet_id  BIGINT REFERENCES wallets(id) ON DELETE SET NULL,
    dest_wallet_id    BIGINT REFERENCES wallets(id) ON DELETE SET NULL,
    type              TEXT NOT NULL,
    amount            NUMERIC(20, 4) NOT NULL CHECK (amount > 0),
    item_id           BIGINT REFERENCES items(id) ON DELETE SET NULL,
    vendor_id         BIGINT REFERENCES vendors(id) ON DELETE SET NULL,
    location          TEXT,
    status            TEXT NOT NULL DEFAULT 'pending',
    transaction_time  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    metadata          TEXT,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tx_source ON transactions (source_wallet_id);
CREATE INDEX IF NOT EXISTS idx_tx_dest ON transactions (dest_wallet_id);
CREATE INDEX IF NOT EXISTS idx_tx_vendor ON transactions (vendor_id);
CREATE INDEX IF NOT EXISTS idx_tx_time ON transactions (transaction_time);

CREATE TABLE IF NOT EXISTS transaction_items (
    id              BIGSERIAL PRIMARY KEY,
    transaction_id  BIGINT NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
    item_id         BIGINT REFERENCES items(id) ON DELETE SET NULL,
    quantity        INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
    unit_price      NUMERIC(20, 4) NOT NULL DEFAULT 0,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_txitems_tx ON transaction_items (transaction_id);
`
