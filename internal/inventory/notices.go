package inventory

// Success notices shown after completed operations.
const (
	NoticeLocationUpdated = "Location updated successfully!"
	NoticeOptionAdded     = "Added successfully"
	NoticeOptionDeleted   = "Deleted successfully"
	NoticeExported        = "Excel file downloaded successfully!"
)
