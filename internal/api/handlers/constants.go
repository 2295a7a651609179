package handlers

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	tempFilePattern = "chart-*.docx"
)
