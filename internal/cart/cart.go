package cart

import (
	"encoding/json"

	"github.com/gin-contrib/sessions"
	"github.com/shopspring/decimal"

	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
)

const sessionKey = "cart"

type Item struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

// Cart is the per-session shopping cart. It is a plain value object: it is
// loaded from the session, mutated, and written back wholesale. Line items
// keep insertion order, and checkout walks them in that order.
//
// Quantities are always >= 1; mutations that would leave a zero or negative
// quantity remove the line item instead.
type Cart struct {
	Items []Item `json:"items"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Quantity returns the requested quantity for productID, 0 if absent.
func (c *Cart) Quantity(productID uint) uint {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}

// Add increments the line item for productID by one, appending a new line
// item at the end of the cart if none exists yet.
func (c *Cart) Add(productID uint) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{ProductID: productID, Quantity: 1})
}

// SetQuantity sets the line item to n, removing it entirely when n <= 0.
func (c *Cart) SetQuantity(productID uint, n int) {
	if n <= 0 {
		c.drop(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = uint(n)
			return
		}
	}
	c.Items = append(c.Items, Item{ProductID: productID, Quantity: uint(n)})
}

// Remove decrements the line item by one, dropping it once it reaches zero.
func (c *Cart) Remove(productID uint) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if c.Items[i].Quantity > 1 {
				c.Items[i].Quantity--
			} else {
				c.drop(productID)
			}
			return
		}
	}
}

func (c *Cart) drop(productID uint) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Total sums price * quantity over the cart using the given product rows.
// Line items without a matching product are skipped; checkout, not the cart
// view, is where missing products become errors.
func (c *Cart) Total(products map[uint]models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		price := decimal.NewFromFloat(p.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Load reads the cart out of the session, returning an empty cart when the
// session has none or holds something unreadable.
func Load(sess sessions.Session) Cart {
	raw, ok := sess.Get(sessionKey).(string)
	if !ok || raw == "" {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}
	}
	return c
}

// Save serializes the whole cart back into the session. The cart has no
// identity of its own, so every mutation replaces it wholesale.
func Save(sess sessions.Session, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	sess.Set(sessionKey, string(data))
	return sess.Save()
}

// Clear removes the cart from the session, used after a successful checkout.
func Clear(sess sessions.Session) error {
	sess.Delete(sessionKey)
	return sess.Save()
}
