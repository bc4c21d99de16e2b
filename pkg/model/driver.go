package model

import (
	"strings"

	"github.com/aarondl/opt/null"
)

type Driver struct {
	ID          int              `db:"driver_id"`
	Code        null.Val[string] `db:"code"`
	Forename    string           `db:"forename"`
	Surname     string           `db:"surname"`
	Nationality string           `db:"nationality"`
}

// Name returns the display name "forename surname".
func (d Driver) Name() string {
	return strings.TrimSpace(d.Forename + " " + d.Surname)
}

type Constructor struct {
	ID          int    `db:"constructor_id"`
	Name        string `db:"name"`
	Nationality string `db:"nationality"`
}
