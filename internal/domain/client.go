package domain

import "time"

// AllClientsLabel is the scope label used for reports that span every client.
const AllClientsLabel = "All_Clients"

// Client is a wholesale customer that sales are booked against.
type Client struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
