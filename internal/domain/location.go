package domain

import (
	"fmt"
	"time"
)

// Location is a place agents report on. TimeZone is an IANA zone name.
type Location struct {
	ID       int64
	Name     string
	TimeZone string
}

// NewLocation creates a new Location.
func NewLocation(name, timeZone string) Location {
	return Location{
		Name:     name,
		TimeZone: timeZone,
	}
}

// Zone loads the location's time zone.
func (l Location) Zone() (*time.Location, error) {
	return LoadZone(l.TimeZone)
}

// IsValid checks if the location has a name and a loadable zone.
func (l Location) IsValid() bool {
	if l.Name == "" {
		return false
	}
	_, err := l.Zone()
	return err == nil
}

// String returns the location name for display purposes.
func (l Location) String() string {
	return l.Name
}

// LoadZone wraps time.LoadLocation, rejecting the empty name that
// time.LoadLocation would otherwise accept as UTC.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("time zone is empty")
	}
	return time.LoadLocation(name)
}
