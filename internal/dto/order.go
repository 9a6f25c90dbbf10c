package dto

import "time"

type CreateOrderRequest struct {
	Barcode      string  `json:"barcode"`
	Description  string  `json:"description"`
	SupplierName *string `json:"supplierName,omitempty"`
}

type OrderResponse struct {
	ID             uint            `json:"id"`
	Barcode        string          `json:"barcode"`
	Description    string          `json:"description"`
	SupplierName   *string         `json:"supplierName"`
	OrderDate      time.Time       `json:"orderDate"`
	ArrivalDate    *time.Time      `json:"arrivalDate"`
	CompletionDate *time.Time      `json:"completionDate"`
	IsClosed       bool            `json:"isClosed"`
	Status         string          `json:"status"`
	Photos         []PhotoResponse `json:"photos"`
}

type PhotoResponse struct {
	ID         uint      `json:"id"`
	FileName   string    `json:"fileName"`
	UploadDate time.Time `json:"uploadDate"`
}

type ArrivalResponse struct {
	Message     string    `json:"message"`
	ArrivalDate time.Time `json:"arrivalDate"`
}

type CompletionResponse struct {
	Message        string    `json:"message"`
	CompletionDate time.Time `json:"completionDate"`
}

type CloseResponse struct {
	Message string `json:"message"`
}
