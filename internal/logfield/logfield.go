package lf

import (
	"github.com/docker/go-units"
	"go.uber.org/zap"
)

const (
	FieldModule       = "module"
	FieldURL          = "url"
	FieldSeason       = "season"
	FieldStatusCode   = "status_code"
	FieldBody         = "body"
	FieldRecords      = "records"
	FieldResponseSize = "response_size"
	FieldErrorKind    = "error_kind"
	FieldSnapshotID   = "snapshot_id"
	FieldAPIKey       = "api_key"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func URL(url string) zap.Field {
	return zap.String(FieldURL, url)
}

func Season(season string) zap.Field {
	return zap.String(FieldSeason, season)
}

func StatusCode(code int) zap.Field {
	return zap.Int(FieldStatusCode, code)
}

func Body(excerpt string) zap.Field {
	return zap.String(FieldBody, excerpt)
}

func Records(n int) zap.Field {
	return zap.Int(FieldRecords, n)
}

func ResponseSize(bytes int) zap.Field {
	return zap.String(FieldResponseSize, units.HumanSize(float64(bytes)))
}

func ErrorKind(kind string) zap.Field {
	return zap.String(FieldErrorKind, kind)
}

func SnapshotID(id string) zap.Field {
	return zap.String(FieldSnapshotID, id)
}

// APIKey expects an already masked key.
func APIKey(masked string) zap.Field {
	return zap.String(FieldAPIKey, masked)
}
