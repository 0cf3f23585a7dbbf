package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TempleID records the temple identifier under the key "temple_id".
func TempleID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("temple_id", id)
}

// PrincipalID records the authenticated principal under "principal_id".
func PrincipalID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("principal_id", id)
}

// ConnectionAlias records a store alias under the key "connection_alias".
func ConnectionAlias(alias string) slog.Attr {
	if alias == "" {
		return slog.Attr{}
	}
	return slog.String("connection_alias", alias)
}
