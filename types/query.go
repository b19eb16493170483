package types

// ListQuery holds the parameters shared by the list endpoints.
// Zero values are left out of the query string.
type ListQuery struct {
	Page      int
	PerPage   int
	Sort      string
	Direction string
	Status    string
	Tags      []string
}
