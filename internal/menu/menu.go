// Package menu is the read-only restaurant catalog. It is compiled in and
// safe for concurrent use; nothing here mutates after init.
package menu

// Item is one orderable menu entry. Prices are whole currency units.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price"`
	Emoji       string `json:"emoji"`
	Vegetarian  bool   `json:"vegetarian"`
	Vegan       bool   `json:"vegan"`
	Popular     bool   `json:"popular"`
}

// Category groups items; item order within a category is display order and is
// part of the button-action contract (items are addressed by index).
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Items       []Item `json:"items"`
}

var categories = []Category{
	{
		ID:          "starters",
		Name:        "🥗 Starters",
		Description: "Light dishes to open the meal",
		Items: []Item{
			{ID: "hummus_classic", Name: "Classic Hummus", Description: "Creamy hummus with tahini, boiled egg and parsley", Price: 18, Emoji: "🧄", Vegetarian: true, Vegan: true, Popular: true},
			{ID: "israeli_salad", Name: "Israeli Salad", Description: "Finely chopped tomato, cucumber, onion and parsley", Price: 22, Emoji: "🥗", Vegetarian: true, Vegan: true},
			{ID: "falafel_plate", Name: "Falafel (8 pcs)", Description: "Crispy chickpea falafel balls with tahini dip", Price: 25, Emoji: "🧆", Vegetarian: true, Vegan: true},
			{ID: "antipasti", Name: "Mixed Antipasti", Description: "Olives, cheeses, sun-dried tomatoes and crackers", Price: 35, Emoji: "🫒", Vegetarian: true},
			{ID: "soup_day", Name: "Soup of the Day", Description: "Fresh soup made daily", Price: 20, Emoji: "🍲"},
		},
	},
	{
		ID:          "mains",
		Name:        "🍽️ Mains",
		Description: "Our filling signature dishes",
		Items: []Item{
			{ID: "shawarma_laffa", Name: "Shawarma in Laffa", Description: "Chicken or lamb shawarma with salads and tahini", Price: 35, Emoji: "🌯", Popular: true},
			{ID: "burger_classic", Name: "Burger & Fries", Description: "220g beef burger with house fries", Price: 45, Emoji: "🍔", Popular: true},
			{ID: "pizza_margherita", Name: "Margherita Pizza", Description: "Tomato, mozzarella and fresh basil", Price: 52, Emoji: "🍕", Vegetarian: true},
			{ID: "schnitzel_plate", Name: "Schnitzel & Sides", Description: "Crispy chicken schnitzel with two sides", Price: 48, Emoji: "🍗"},
			{ID: "veggie_stirfry", Name: "Veggie Stir-Fry", Description: "Seasonal vegetables over jasmine rice", Price: 42, Emoji: "🥦", Vegetarian: true, Vegan: true},
		},
	},
	{
		ID:   "drinks",
		Name: "🥤 Drinks",
		Items: []Item{
			{ID: "cola", Name: "Cola", Price: 8, Emoji: "🥤", Vegetarian: true, Vegan: true},
			{ID: "orange_juice", Name: "Fresh Orange Juice", Price: 12, Emoji: "🧃", Vegetarian: true, Vegan: true, Popular: true},
			{ID: "black_coffee", Name: "Black Coffee", Price: 10, Emoji: "☕", Vegetarian: true, Vegan: true},
			{ID: "lager_beer", Name: "Local Lager", Price: 18, Emoji: "🍺", Vegetarian: true, Vegan: true},
		},
	},
	{
		ID:   "desserts",
		Name: "🍰 Desserts",
		Items: []Item{
			{ID: "malabi", Name: "Malabi", Description: "Rosewater milk pudding with pistachio", Price: 16, Emoji: "🍮", Vegetarian: true},
			{ID: "chocolate_cake", Name: "Warm Chocolate Cake", Description: "With a scoop of vanilla ice cream", Price: 24, Emoji: "🍫", Vegetarian: true, Popular: true},
			{ID: "baklava", Name: "Baklava (4 pcs)", Description: "Honey and walnut filo pastry", Price: 20, Emoji: "🥮", Vegetarian: true},
		},
	},
}

var itemsByID = func() map[string]Item {
	m := make(map[string]Item)
	for _, c := range categories {
		for _, it := range c.Items {
			m[it.ID] = it
		}
	}
	return m
}()

// Categories returns all categories in display order.
func Categories() []Category {
	return categories
}

// Get returns a category by id.
func Get(categoryID string) (Category, bool) {
	for _, c := range categories {
		if c.ID == categoryID {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName returns the display name for a category id.
func CategoryName(categoryID string) (string, bool) {
	c, ok := Get(categoryID)
	if !ok {
		return "", false
	}
	return c.Name, true
}

// ItemAt returns the item at a display index within a category.
func ItemAt(categoryID string, index int) (Item, bool) {
	c, ok := Get(categoryID)
	if !ok || index < 0 || index >= len(c.Items) {
		return Item{}, false
	}
	return c.Items[index], true
}

// ItemByID returns an item by its catalog id.
func ItemByID(id string) (Item, bool) {
	it, ok := itemsByID[id]
	return it, ok
}

// Popular returns up to limit items flagged popular, in catalog order.
func Popular(limit int) []Item {
	var out []Item
	for _, c := range categories {
		for _, it := range c.Items {
			if it.Popular {
				out = append(out, it)
				if limit > 0 && len(out) == limit {
					return out
				}
			}
		}
	}
	return out
}
