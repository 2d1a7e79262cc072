package entity

type Station struct {
	BaseSimple
	Name string `db:"name"`
	City string `db:"city"`
	Code string `db:"code"`
}
