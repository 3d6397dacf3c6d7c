package http

import (
	"novelforge-server/internal/models"
	"novelforge-server/internal/repository"
)

// Помощники сборки repository.Fields из DTO с полями-указателями:
// nil означает "поле не пришло" и в набор не попадает.

func setString(fields repository.Fields, column string, value *string) repository.Fields {
	if value == nil {
		return fields
	}
	return fields.Set(column, *value)
}

func setInt(fields repository.Fields, column string, value *int) repository.Fields {
	if value == nil {
		return fields
	}
	return fields.Set(column, *value)
}

func setInt64(fields repository.Fields, column string, value *int64) repository.Fields {
	if value == nil {
		return fields
	}
	return fields.Set(column, *value)
}

func setJSON(fields repository.Fields, column string, value models.JSONMap) repository.Fields {
	if value == nil {
		return fields
	}
	return fields.Set(column, value)
}

func setStrings(fields repository.Fields, column string, value []string) repository.Fields {
	if value == nil {
		return fields
	}
	return fields.Set(column, value)
}
