package models

// MaxIDNumberLength is the length of a South African ID number.
const MaxIDNumberLength = 13

// Worker is a farm employee who buys from the shop on account.
type Worker struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IDNumber string `json:"idNumber,omitempty"`
	FarmID   string `json:"farmId"`
}

// FindWorker returns the worker with the given id.
func FindWorker(workers []Worker, id int) (Worker, bool) {
	for _, w := range workers {
		if w.ID == id {
			return w, true
		}
	}
	return Worker{}, false
}
