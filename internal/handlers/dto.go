package handlers

import (
	"net/url"

	"github.com/gorilla/schema"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func decode[T any](src url.Values) (T, error) {
	var dto T
	err := decoder.Decode(&dto, src)
	return dto, err
}

type NewGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

type RunBenchDTO struct {
	Preset     string  `schema:"preset,required"`
	Policy     string  `schema:"policy,required"`
	Iterations int     `schema:"iterations,required"`
	Workers    int     `schema:"workers"`
	Seed       *uint64 `schema:"seed"`
}

type BenchFilterDTO struct {
	Preset *string `schema:"preset"`
	Policy *string `schema:"policy"`
	Limit  int     `schema:"limit"`
}

type RecordFilterDTO struct {
	Username  *string `schema:"username"`
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
	Limit     int     `schema:"limit"`
}
