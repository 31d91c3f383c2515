package models

type Product struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	Emoji       string `json:"emoji"`
}

type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

type OrderStatus string

const OrderStatusPending OrderStatus = "pending"

type OrderItem struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Price    Money  `json:"price"`
	Quantity int    `json:"quantity"`
	Emoji    string `json:"emoji"`
}

type Order struct {
	Id              string      `json:"id"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerAddress string      `json:"customerAddress"`
	CustomerPhone   string      `json:"customerPhone"`
	Items           []OrderItem `json:"items"`
	Total           Money       `json:"total"`
	Date            string      `json:"date"`
	Status          OrderStatus `json:"status"`
	IsNew           bool        `json:"isNew"`
}

// CheckoutForm is the customer contact data submitted at checkout.
// Blank fields are replaced by defaults before validation.
type CheckoutForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type CartView struct {
	Items            []CartItem `json:"items"`
	Count            int        `json:"count"`
	Total            string     `json:"total"`
	Empty            bool       `json:"empty"`
	CheckoutDisabled bool       `json:"checkoutDisabled"`
	Placeholder      string     `json:"placeholder,omitempty"`
}

type Confirmation struct {
	Order Order    `json:"order"`
	Cart  CartView `json:"cart"`
}

type Notification struct {
	NewOrder      bool   `json:"newOrder"`
	LastOrderTime string `json:"lastOrderTime"`
}
