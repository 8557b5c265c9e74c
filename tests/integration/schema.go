package integration

// commandSchema mirrors the tables the command service owns. The query
// service never creates these in production; tests need them before the
// read-side index migrations can apply.
const commandSchema = `
CREATE TABLE IF NOT EXISTS inventory_locations (
    id BIGSERIAL PRIMARY KEY,
    location_code VARCHAR(50) NOT NULL UNIQUE,
    location_name VARCHAR(255) NOT NULL,
    location_type VARCHAR(50) NOT NULL,
    warehouse_zone VARCHAR(50),
    aisle VARCHAR(20),
    rack VARCHAR(20),
    shelf VARCHAR(20),
    bin VARCHAR(20),
    capacity DECIMAL(12,2),
    current_utilization DECIMAL(12,2) DEFAULT 0,
    temperature_controlled BOOLEAN NOT NULL DEFAULT FALSE,
    hazardous_materials BOOLEAN NOT NULL DEFAULT FALSE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS inventory_balances (
    id BIGSERIAL PRIMARY KEY,
    part_number VARCHAR(100) NOT NULL,
    location_id BIGINT NOT NULL REFERENCES inventory_locations(id),
    available_quantity DECIMAL(12,3) NOT NULL DEFAULT 0,
    reserved_quantity DECIMAL(12,3) NOT NULL DEFAULT 0,
    quarantine_quantity DECIMAL(12,3) NOT NULL DEFAULT 0,
    average_cost DECIMAL(12,2) NOT NULL DEFAULT 0,
    reorder_point DECIMAL(12,3),
    max_stock_level DECIMAL(12,3),
    last_movement_date TIMESTAMPTZ,
    last_count_date TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS inventory_movements (
    id BIGSERIAL PRIMARY KEY,
    movement_number VARCHAR(50) NOT NULL UNIQUE,
    part_number VARCHAR(100) NOT NULL,
    movement_type VARCHAR(20) NOT NULL,
    from_location_id BIGINT,
    to_location_id BIGINT,
    quantity DECIMAL(12,3) NOT NULL,
    unit_cost DECIMAL(12,2),
    reference_type VARCHAR(50) NOT NULL,
    reference_id VARCHAR(100),
    reason_code VARCHAR(50),
    notes TEXT,
    user_id BIGINT NOT NULL,
    movement_date DATE NOT NULL,
    batch_number VARCHAR(50),
    expiry_date DATE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS stock_reservations (
    id BIGSERIAL PRIMARY KEY,
    reservation_number VARCHAR(50) NOT NULL UNIQUE,
    part_number VARCHAR(100) NOT NULL,
    location_id BIGINT NOT NULL,
    reserved_quantity DECIMAL(12,3) NOT NULL,
    reservation_type VARCHAR(50) NOT NULL,
    reference_id VARCHAR(100),
    reserved_by BIGINT NOT NULL,
    expiry_date DATE,
    notes TEXT,
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cycle_counts (
    id BIGSERIAL PRIMARY KEY,
    count_number VARCHAR(50) NOT NULL UNIQUE,
    location_id BIGINT NOT NULL,
    count_date DATE NOT NULL,
    count_type VARCHAR(20) NOT NULL,
    assigned_to BIGINT,
    created_by BIGINT NOT NULL,
    approved_by BIGINT,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    notes TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cycle_count_details (
    id BIGSERIAL PRIMARY KEY,
    cycle_count_id BIGINT NOT NULL REFERENCES cycle_counts(id),
    part_number VARCHAR(100) NOT NULL,
    system_quantity DECIMAL(12,3) NOT NULL,
    counted_quantity DECIMAL(12,3),
    variance_quantity DECIMAL(12,3),
    variance_value DECIMAL(12,2),
    reason_code VARCHAR(50),
    notes TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS production_orders (
    id BIGSERIAL PRIMARY KEY,
    job_order VARCHAR(50) NOT NULL,
    part_number VARCHAR(100) NOT NULL,
    plan_quantity DECIMAL(12,2) NOT NULL,
    machine_name VARCHAR(100),
    start_date DATE NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'running',
    workflow_status VARCHAR(20) NOT NULL DEFAULT 'planning',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS output_mc (
    id BIGSERIAL PRIMARY KEY,
    production_order_id BIGINT,
    machine_id VARCHAR(50) NOT NULL,
    part_number VARCHAR(100) NOT NULL,
    quantity_good DECIMAL(10,2) NOT NULL DEFAULT 0,
    quantity_ng DECIMAL(10,2) NOT NULL DEFAULT 0,
    operator_id BIGINT,
    shift VARCHAR(10) NOT NULL,
    production_date DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS machines (
    id BIGSERIAL PRIMARY KEY,
    machine_code VARCHAR(50) NOT NULL,
    machine_name VARCHAR(100) NOT NULL,
    machine_type VARCHAR(50),
    location_id BIGINT,
    capacity_per_hour DECIMAL(8,2),
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bill_of_materials (
    id BIGSERIAL PRIMARY KEY,
    parent_part_number VARCHAR(50) NOT NULL,
    child_part_number VARCHAR(50) NOT NULL,
    quantity_required DECIMAL(15,6) NOT NULL,
    unit_of_measure VARCHAR(10) NOT NULL,
    scrap_factor DECIMAL(5,4) NOT NULL DEFAULT 0,
    operation_sequence INT NOT NULL DEFAULT 1,
    effective_date DATE NOT NULL,
    expiry_date DATE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS stock_wip (
    id BIGSERIAL PRIMARY KEY,
    part_number VARCHAR(100) NOT NULL,
    description VARCHAR(100) NOT NULL,
    quantity DECIMAL(10,2) NOT NULL DEFAULT 0,
    current_station VARCHAR(100),
    last_updated TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS oqc (
    id BIGSERIAL PRIMARY KEY,
    part_number VARCHAR(100),
    lot_number VARCHAR(100),
    quantity_good DECIMAL(10,2) NOT NULL,
    quantity_ng DECIMAL(10,2) NOT NULL DEFAULT 0,
    inspection_date TIMESTAMPTZ,
    inspector_id BIGINT,
    notes TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS qc_inspection_plans (
    id BIGSERIAL PRIMARY KEY,
    plan_code VARCHAR(50) NOT NULL UNIQUE,
    part_number VARCHAR(100) NOT NULL,
    plan_name VARCHAR(255) NOT NULL,
    inspection_type VARCHAR(20) NOT NULL,
    sampling_method VARCHAR(20) NOT NULL DEFAULT 'statistical',
    sample_size INT NOT NULL DEFAULT 1,
    acceptance_criteria JSONB,
    inspection_points JSONB,
    required_tools VARCHAR(500),
    estimated_time_minutes INT NOT NULL DEFAULT 30,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_by BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS qc_inspection_results (
    id BIGSERIAL PRIMARY KEY,
    inspection_number VARCHAR(50) NOT NULL UNIQUE,
    qc_plan_id BIGINT NOT NULL,
    source_type VARCHAR(20) NOT NULL,
    source_reference_id BIGINT,
    lot_number VARCHAR(255) NOT NULL,
    part_number VARCHAR(100) NOT NULL,
    quantity_inspected DECIMAL(12,3) NOT NULL,
    quantity_passed DECIMAL(12,3) NOT NULL DEFAULT 0,
    quantity_failed DECIMAL(12,3) NOT NULL DEFAULT 0,
    quantity_rework DECIMAL(12,3) NOT NULL DEFAULT 0,
    inspector_id BIGINT NOT NULL,
    inspection_start_time TIMESTAMPTZ,
    inspection_end_time TIMESTAMPTZ,
    inspection_location VARCHAR(100),
    measurement_data JSONB,
    defect_codes JSONB,
    corrective_actions TEXT,
    inspector_notes TEXT,
    inspection_status VARCHAR(20) NOT NULL DEFAULT 'pending',
    overall_result VARCHAR(20),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS qc_non_conformance (
    id BIGSERIAL PRIMARY KEY,
    ncr_number VARCHAR(50) NOT NULL UNIQUE,
    inspection_result_id BIGINT NOT NULL,
    ncr_type VARCHAR(30) NOT NULL,
    part_number VARCHAR(100) NOT NULL,
    lot_number VARCHAR(255) NOT NULL,
    quantity_affected DECIMAL(12,3) NOT NULL,
    problem_description TEXT NOT NULL,
    immediate_action TEXT NOT NULL,
    priority VARCHAR(20) NOT NULL DEFAULT 'medium',
    status VARCHAR(20) NOT NULL DEFAULT 'open',
    reported_by BIGINT NOT NULL,
    assigned_to BIGINT,
    target_close_date TIMESTAMPTZ,
    actual_close_date TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS transfer_qc (
    id BIGSERIAL PRIMARY KEY,
    part_number VARCHAR(100),
    quantity DECIMAL(10,2) NOT NULL,
    transfer_date TIMESTAMPTZ,
    production_order_id BIGINT,
    user_id BIGINT,
    notes TEXT
);

CREATE TABLE IF NOT EXISTS master_prod (
    id BIGSERIAL PRIMARY KEY,
    part_number VARCHAR(100) NOT NULL UNIQUE,
    description TEXT,
    unit_of_measure VARCHAR(20) NOT NULL DEFAULT 'PCS',
    standard_cost DECIMAL(12,2) NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email VARCHAR(50) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    full_name VARCHAR(100),
    role VARCHAR(20) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_log (
    id BIGSERIAL PRIMARY KEY,
    id_user BIGINT,
    email VARCHAR(50) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    logs_status TEXT,
    ip_address VARCHAR(45),
    user_agent TEXT
);

CREATE TABLE IF NOT EXISTS delivery (
    id BIGSERIAL PRIMARY KEY,
    delivery_order_number VARCHAR(100) NOT NULL UNIQUE,
    part_number VARCHAR(100),
    quantity_shipped DECIMAL(10,2) NOT NULL,
    delivery_date TIMESTAMPTZ,
    user_id BIGINT,
    customer VARCHAR(255),
    notes TEXT
);

CREATE TABLE IF NOT EXISTS return_customer (
    id BIGSERIAL PRIMARY KEY,
    part_number VARCHAR(255) NOT NULL,
    model VARCHAR(255),
    description TEXT,
    qty DECIMAL(10,2) NOT NULL,
    status_ng VARCHAR(50),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS stock_fg (
    id BIGSERIAL PRIMARY KEY,
    part_number VARCHAR(100),
    quantity DECIMAL(10,2) NOT NULL DEFAULT 0,
    location VARCHAR(100),
    last_updated TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS stock_take_history (
    id BIGSERIAL PRIMARY KEY,
    take_date TIMESTAMPTZ,
    stock_type VARCHAR(10) NOT NULL,
    part_number VARCHAR(100),
    system_quantity DECIMAL(10,2) NOT NULL,
    physical_quantity DECIMAL(10,2) NOT NULL,
    discrepancy DECIMAL(10,2) NOT NULL,
    user_id BIGINT,
    notes TEXT
);

CREATE TABLE IF NOT EXISTS stock_adjustments (
    id BIGSERIAL PRIMARY KEY,
    part_number VARCHAR(100) NOT NULL,
    stock_type VARCHAR(10) NOT NULL,
    adjustment_quantity DECIMAL(10,2) NOT NULL,
    new_quantity DECIMAL(10,2) NOT NULL,
    reason VARCHAR(255),
    user_id BIGINT,
    adjustment_date TIMESTAMPTZ,
    stock_take_history_id BIGINT
);
`
