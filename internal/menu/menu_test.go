package menu

import "testing"

func TestItemAt(t *testing.T) {
	item, ok := ItemAt("starters", 0)
	if !ok {
		t.Fatal("expected the first starter to exist")
	}
	if item.Name == "" || item.Price <= 0 {
		t.Fatalf("malformed catalog item: %+v", item)
	}
}

func TestItemAtOutOfRange(t *testing.T) {
	if _, ok := ItemAt("starters", 99); ok {
		t.Fatal("expected out-of-range index to be absent")
	}
	if _, ok := ItemAt("starters", -1); ok {
		t.Fatal("expected negative index to be absent")
	}
	if _, ok := ItemAt("nope", 0); ok {
		t.Fatal("expected unknown category to be absent")
	}
}

func TestItemByID(t *testing.T) {
	item, ok := ItemByID("shawarma_laffa")
	if !ok {
		t.Fatal("expected shawarma_laffa to exist")
	}
	if item.Price != 35 {
		t.Fatalf("unexpected price: %d", item.Price)
	}
	if _, ok := ItemByID("ghost_item"); ok {
		t.Fatal("expected unknown id to be absent")
	}
}

func TestCategoryName(t *testing.T) {
	name, ok := CategoryName("drinks")
	if !ok || name == "" {
		t.Fatalf("expected a drinks category name, got %q", name)
	}
	if _, ok := CategoryName("nope"); ok {
		t.Fatal("expected unknown category to be absent")
	}
}

func TestPopularRespectsLimit(t *testing.T) {
	items := Popular(2)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, it := range items {
		if !it.Popular {
			t.Fatalf("non-popular item returned: %+v", it)
		}
	}
}

func TestCatalogIntegrity(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Categories() {
		if len(c.Items) == 0 {
			t.Fatalf("category %s has no items", c.ID)
		}
		for _, it := range c.Items {
			if it.Price <= 0 {
				t.Fatalf("item %s has non-positive price", it.ID)
			}
			if seen[it.ID] {
				t.Fatalf("duplicate item id %s", it.ID)
			}
			seen[it.ID] = true
		}
	}
}
