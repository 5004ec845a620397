// pkg/safarimart/types.go
package safarimart

import "time"

// Product mirrors a marketplace listing as served by the API. Amounts are in
// the smallest currency unit.
type Product struct {
	ID           int64     `json:"id"`
	CreatorID    string    `json:"creator_id"`
	FileURL      string    `json:"file_url"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	Price        int64     `json:"price"`
	IsActive     bool      `json:"is_active"`
	TotalSales   int64     `json:"total_sales"`
	TotalRevenue int64     `json:"total_revenue"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Purchase is a write-once purchase record.
type Purchase struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	BuyerID     string    `json:"buyer_id"`
	PricePaid   int64     `json:"price_paid"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// PurchaseHistoryItem pairs a purchase with the product it bought.
type PurchaseHistoryItem struct {
	Purchase Purchase `json:"purchase"`
	Product  Product  `json:"product"`
}

type Wallet struct {
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	Status   string `json:"status"`
}

type JournalEntry struct {
	ID         int64                  `json:"id"`
	Event      string                 `json:"event"`
	ActorID    string                 `json:"actor_id"`
	ProductID  *int64                 `json:"product_id"`
	PurchaseID *int64                 `json:"purchase_id"`
	Data       map[string]interface{} `json:"data"`
	PrevHash   string                 `json:"prev_hash"`
	Hash       string                 `json:"hash"`
	CreatedAt  time.Time              `json:"created_at"`
}

type FeeSettings struct {
	PlatformFeeBps int64  `json:"platform_fee_bps"`
	FeeRecipientID string `json:"fee_recipient_id"`
}

// ListProductRequest creates a new listing. Price must be positive.
type ListProductRequest struct {
	FileURL     string   `json:"file_url,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Price       int64    `json:"price"`
}

// UpdateProductRequest carries a partial update; nil fields keep their
// stored values.
type UpdateProductRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type AuthResponse struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}
