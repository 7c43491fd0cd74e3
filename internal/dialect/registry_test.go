package dialect

import (
	"errors"
	"testing"

	"catalog-gateway/internal/model"
)

func TestRegistryResolvesAllSupportedDialects(t *testing.T) {
	reg := NewRegistry()
	for _, dbType := range model.SupportedTypes {
		ts, err := reg.Resolve(dbType)
		if err != nil {
			t.Errorf("Resolve(%s) = %v", dbType, err)
			continue
		}
		if ts.Dialect != dbType {
			t.Errorf("Resolve(%s) returned set for %s", dbType, ts.Dialect)
		}
		if !reg.IsSupported(dbType) {
			t.Errorf("IsSupported(%s) = false", dbType)
		}
	}
}

func TestRegistryRejectsUnknownDialect(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Resolve(model.DatabaseType("oracle"))
	if !errors.Is(err, ErrUnsupportedDialect) {
		t.Errorf("Resolve(oracle) = %v, want ErrUnsupportedDialect", err)
	}
	if reg.IsSupported(model.DatabaseType("oracle")) {
		t.Error("IsSupported(oracle) = true")
	}
}

func TestRegistryListsDialectsInCanonicalOrder(t *testing.T) {
	got := NewRegistry().SupportedDialects()
	if len(got) != len(model.SupportedTypes) {
		t.Fatalf("SupportedDialects() has %d entries, want %d", len(got), len(model.SupportedTypes))
	}
	for i, dbType := range model.SupportedTypes {
		if got[i] != dbType {
			t.Errorf("SupportedDialects()[%d] = %s, want %s", i, got[i], dbType)
		}
	}
}

func TestEveryDialectCoversEveryQueryKind(t *testing.T) {
	kinds := []QueryKind{
		KindListTables, KindCountTables,
		KindListColumns, KindCountColumns,
		KindListOutgoingFKs, KindCountOutgoingFKs,
		KindListIncomingFKs, KindCountIncomingFKs,
		KindTableExists,
	}

	reg := NewRegistry()
	for _, dbType := range model.SupportedTypes {
		ts, err := reg.Resolve(dbType)
		if err != nil {
			t.Fatalf("%s: %v", dbType, err)
		}
		for _, kind := range kinds {
			if _, err := ts.Template(kind); err != nil {
				t.Errorf("%s missing template for %s: %v", dbType, kind, err)
			}
		}
	}
}
