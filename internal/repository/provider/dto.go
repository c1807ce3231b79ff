package provider

import (
	"encoding/json"
	"strconv"
	"time"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

// Hash field names for the provider record.
const (
	fieldName          = "name"
	fieldPhone         = "phone"
	fieldService       = "service"
	fieldBio           = "bio"
	fieldWebsite       = "website"
	fieldEmail         = "email"
	fieldPasswordHash  = "password_hash"
	fieldPhotos        = "photos"
	fieldLongitude     = "longitude"
	fieldLatitude      = "latitude"
	fieldEmailVerified = "email_verified"
	fieldVerifCode     = "verification_code"
	fieldVerifCodeAt   = "verification_code_created_at"
	fieldVerifiedAt    = "email_verified_at"
	fieldResetCode     = "reset_code"
	fieldResetCodeAt   = "reset_code_created_at"
	fieldActive        = "is_active"
	fieldBlocked       = "is_blocked"
	fieldBlockedReason = "blocked_reason"
	fieldLastLoginAt   = "last_login_at"
	fieldCreatedAt     = "created_at"
	fieldUpdatedAt     = "updated_at"
)

// buildHashFields converts a provider into a flat map[string]string for HSET.
// Booleans are "1"/"0", timestamps are unix milliseconds, photos are a JSON
// array. Zero timestamps and empty optionals are stored as empty strings so
// the record shape stays fixed.
func buildHashFields(p *domprov.Provider) map[string]string {
	m := map[string]string{
		fieldName:          p.Name,
		fieldPhone:         p.Phone,
		fieldService:       p.Service,
		fieldBio:           p.Bio,
		fieldWebsite:       p.Website,
		fieldEmail:         p.Email,
		fieldPasswordHash:  p.PasswordHash,
		fieldPhotos:        encodePhotos(p.Photos),
		fieldEmailVerified: encodeBool(p.EmailVerified),
		fieldVerifCode:     p.VerificationCode,
		fieldVerifCodeAt:   encodeTime(p.VerificationCodeCreatedAt),
		fieldVerifiedAt:    encodeTime(p.EmailVerifiedAt),
		fieldResetCode:     p.ResetCode,
		fieldResetCodeAt:   encodeTime(p.ResetCodeCreatedAt),
		fieldActive:        encodeBool(p.IsActive),
		fieldBlocked:       encodeBool(p.IsBlocked),
		fieldBlockedReason: p.BlockedReason,
		fieldLastLoginAt:   encodeTime(p.LastLoginAt),
		fieldCreatedAt:     encodeTime(p.CreatedAt),
		fieldUpdatedAt:     encodeTime(p.UpdatedAt),
	}
	if p.Location != nil {
		m[fieldLongitude] = strconv.FormatFloat(p.Location.Longitude, 'f', -1, 64)
		m[fieldLatitude] = strconv.FormatFloat(p.Location.Latitude, 'f', -1, 64)
	} else {
		m[fieldLongitude] = ""
		m[fieldLatitude] = ""
	}
	return m
}

// parseHashFields converts a flat hash map back into a provider. A record
// with unparsable coordinates comes back with a nil Location rather than an
// error; radius queries simply never annotate it with a distance.
func parseHashFields(id string, m map[string]string) domprov.Provider {
	p := domprov.Provider{
		ID:                        id,
		Name:                      m[fieldName],
		Phone:                     m[fieldPhone],
		Service:                   m[fieldService],
		Bio:                       m[fieldBio],
		Website:                   m[fieldWebsite],
		Email:                     m[fieldEmail],
		PasswordHash:              m[fieldPasswordHash],
		Photos:                    decodePhotos(m[fieldPhotos]),
		EmailVerified:             m[fieldEmailVerified] == "1",
		VerificationCode:          m[fieldVerifCode],
		VerificationCodeCreatedAt: decodeTime(m[fieldVerifCodeAt]),
		EmailVerifiedAt:           decodeTime(m[fieldVerifiedAt]),
		ResetCode:                 m[fieldResetCode],
		ResetCodeCreatedAt:        decodeTime(m[fieldResetCodeAt]),
		IsActive:                  m[fieldActive] == "1",
		IsBlocked:                 m[fieldBlocked] == "1",
		BlockedReason:             m[fieldBlockedReason],
		LastLoginAt:               decodeTime(m[fieldLastLoginAt]),
		CreatedAt:                 decodeTime(m[fieldCreatedAt]),
		UpdatedAt:                 decodeTime(m[fieldUpdatedAt]),
	}

	lon, lonErr := strconv.ParseFloat(m[fieldLongitude], 64)
	lat, latErr := strconv.ParseFloat(m[fieldLatitude], 64)
	if lonErr == nil && latErr == nil {
		p.Location = &domprov.Location{Longitude: lon, Latitude: lat}
	}

	return p
}

func encodePhotos(photos []domprov.Photo) string {
	if len(photos) == 0 {
		return "[]"
	}
	data, err := json.Marshal(photos)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodePhotos(s string) []domprov.Photo {
	if s == "" || s == "[]" {
		return nil
	}
	var photos []domprov.Photo
	if err := json.Unmarshal([]byte(s), &photos); err != nil {
		return nil
	}
	return photos
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func decodeTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
