package vecdb_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/vecdb"
)

func ExampleStore() {
	ctx := context.Background()
	db := vecdb.New()

	for _, row := range []struct {
		embedding []float32
		text      string
	}{
		{[]float32{1, 0}, "a"},
		{[]float32{0, 1}, "b"},
		{[]float32{0.7071, 0.7071}, "c"},
	} {
		if _, err := db.Add(ctx, row.embedding, row.text, "demo.csv", "0"); err != nil {
			log.Fatal(err)
		}
	}

	results, err := db.Query(ctx, []float32{1, 0}, 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		fmt.Printf("%s %.4f\n", r.Record.Text, r.Similarity)
	}
	// Output:
	// a 1.0000
	// c 0.7071
}

func ExampleStore_persistence() {
	ctx := context.Background()
	dir, err := os.MkdirTemp("", "vecdb")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	db := vecdb.New()
	if _, err := db.Add(ctx, vecdb.AsVector([]float64{0.1, 0.2}), "persisted", "demo.csv", "0"); err != nil {
		log.Fatal(err)
	}
	if err := db.Save(ctx, dir); err != nil {
		log.Fatal(err)
	}

	restored := vecdb.New()
	if err := restored.Load(ctx, dir); err != nil {
		log.Fatal(err)
	}

	_, rec, err := restored.Get(vecdb.ByIndex(0))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(rec.Text)
	// Output:
	// persisted
}
