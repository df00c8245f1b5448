package listing

import "github.com/example/shipdesk/internal/models"

// Paginate returns the 1-indexed page of records: records[(page-1)*size : page*size],
// clipped to the slice. Pages beyond the end, a page below 1 or a size below 1
// yield an empty window.
func Paginate(records []models.Record, page, size int) []models.Record {
	if page < 1 || size < 1 {
		return []models.Record{}
	}
	// Compare page indexes before multiplying so huge pages cannot overflow.
	if len(records) == 0 || page-1 > (len(records)-1)/size {
		return []models.Record{}
	}
	start := (page - 1) * size
	end := start + min(len(records)-start, size)
	return append([]models.Record(nil), records[start:end]...)
}

// TotalPages returns ceil(count/size), or 0 when size is below 1.
func TotalPages(count, size int) int {
	if size < 1 || count <= 0 {
		return 0
	}
	return (count-1)/size + 1
}
