package helpers

// Pagination is the page metadata attached to filtered list responses.
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalEvents   int64 `json:"totalEvents"`
	EventsPerPage int   `json:"eventsPerPage"`
}

// ApiResponse is the wire envelope: every response carries a success
// flag; 500 responses pass the underlying error message through.
type ApiResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(message string) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: message,
	}
}

func FailureResponse(message string, err error) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	}
}

func CountedResponse(data interface{}, count int, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Count:   &count,
		Message: message,
	}
}

func PaginatedResponse(data interface{}, currentPage, perPage int, total int64) ApiResponse {
	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}
	return ApiResponse{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			CurrentPage:   currentPage,
			TotalPages:    totalPages,
			TotalEvents:   total,
			EventsPerPage: perPage,
		},
	}
}

// SearchResponse is the envelope for the joined participant/organizer
// searches: one facet round trip, total counted before pagination.
type SearchResponse struct {
	Success  bool        `json:"success"`
	Total    int64       `json:"total"`
	Skip     int         `json:"skip"`
	Limit    int         `json:"limit"`
	HasMore  bool        `json:"hasMore"`
	NextSkip int         `json:"nextSkip"`
	Data     interface{} `json:"data"`
}
