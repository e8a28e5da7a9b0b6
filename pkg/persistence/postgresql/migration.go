package postgresql

// migrations returns the ordered schema migrations for the forms database.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS forms (
				id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT,
				status VARCHAR(50) NOT NULL DEFAULT 'draft',
				pages JSONB NOT NULL DEFAULT '[]',
				elements JSONB NOT NULL DEFAULT '{}',
				rules JSONB NOT NULL DEFAULT '[]',
				workflow JSONB,
				owner VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				deleted_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX IF NOT EXISTS idx_forms_owner ON forms(owner);
			CREATE INDEX IF NOT EXISTS idx_forms_status ON forms(status);
			CREATE INDEX IF NOT EXISTS idx_forms_created_at ON forms(created_at);
		`,
		2: `
			CREATE TABLE IF NOT EXISTS workflows (
				id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT,
				nodes JSONB NOT NULL DEFAULT '[]',
				edges JSONB NOT NULL DEFAULT '[]',
				variables JSONB NOT NULL DEFAULT '{}',
				owner VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				deleted_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX IF NOT EXISTS idx_workflows_owner ON workflows(owner);
		`,
	}
}
