package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Create editor_states table
			CREATE TABLE editor_states (
				key VARCHAR(255) PRIMARY KEY,
				plan_id VARCHAR(255),
				state JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_editor_states_plan_id ON editor_states(plan_id);
		`,
	}
}
