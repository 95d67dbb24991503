package models

import "time"

// Receipt records stock received into the shop.
type Receipt struct {
	ID       int       `json:"id"`
	Date     time.Time `json:"date"`
	ItemID   int       `json:"itemId"`
	ItemName string    `json:"itemName"`
	Quantity int       `json:"quantity"`
}
