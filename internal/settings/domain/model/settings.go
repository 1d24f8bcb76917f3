package model

import (
	storemodel "sharvari-site/internal/store/domain/model"
)

// Location of the settings document.
const (
	Collection = "settings"
	DocumentID = "general"
)

// Contact keys of the settings document.
const (
	KeyEmail   = "email"
	KeyPhone   = "phone"
	KeyAddress = "address"
)

// Settings are the site-wide contact details shown in the header and
// footer. Any extra keys stored on the document are carried along.
type Settings storemodel.Fields

// Defaults returns the values used until the settings document has been read.
func Defaults() Settings {
	return Settings{
		KeyEmail:   "info@sharvarielectricals.com",
		KeyPhone:   "+91-0000000000",
		KeyAddress: "Aurangabad, Maharashtra, India",
	}
}

func (s Settings) Email() string   { return storemodel.Fields(s).String(KeyEmail) }
func (s Settings) Phone() string   { return storemodel.Fields(s).String(KeyPhone) }
func (s Settings) Address() string { return storemodel.Fields(s).String(KeyAddress) }

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	return Settings(storemodel.Fields(s).Clone())
}

// Overlay returns a copy of s in which every key present in fields replaces
// the current value.
func (s Settings) Overlay(fields storemodel.Fields) Settings {
	out := s.Clone()
	if out == nil {
		out = Settings{}
	}
	for k, v := range fields {
		out[k] = storemodel.CloneValue(v)
	}
	return out
}
