package db

const Schema = `
CREATE TABLE IF NOT EXISTS public.equipment_weight
(
    id          BIGSERIAL PRIMARY KEY,
    name        VARCHAR          NOT NULL UNIQUE,
    weight      DOUBLE PRECISION NOT NULL CHECK (weight >= 0),
    weight_unit VARCHAR(8)       NOT NULL,
    is_favorite BOOLEAN          NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS public.distance
(
    id            BIGSERIAL PRIMARY KEY,
    name          VARCHAR          NOT NULL UNIQUE,
    distance      DOUBLE PRECISION NOT NULL CHECK (distance >= 0),
    distance_unit VARCHAR(8)       NOT NULL,
    is_favorite   BOOLEAN          NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS public.calculation_session
(
    owner_id           VARCHAR                     NOT NULL,
    unit_group         VARCHAR(16)                 NOT NULL,
    calculation_string TEXT                        NOT NULL,
    updated_at         TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    PRIMARY KEY (owner_id, unit_group)
);
`
