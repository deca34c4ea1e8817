package explore_test

import (
	"context"
	"fmt"

	"github.com/arcivia/arcivia-explore/pkg/explore"
	"github.com/arcivia/arcivia-explore/pkg/heritage"
)

func ExampleCoordinator() {
	q := heritage.Query{Category: "monuments"}

	c := explore.NewCoordinator(explore.SampleSource{}, q, explore.DefaultConfig())
	defer c.Close()

	if err := c.Wait(context.Background()); err != nil {
		fmt.Println("wait:", err)
		return
	}

	st := c.State()
	for _, it := range st.Items {
		fmt.Println(it.ID, it.Title)
	}
	fmt.Println("more:", st.HasMore)
	// Output:
	// 6 Notre-Dame Cathedral
	// 2 Colosseum
	// 8 Acropolis of Athens
	// 4 Stonehenge
	// more: false
}

func ExampleDetailLoader_Load() {
	loader := explore.NewDetailLoader(nil, nil)

	d, err := loader.Load(context.Background(), "6", heritage.SampleItems())
	if err != nil {
		fmt.Println("load:", err)
		return
	}

	fmt.Println(d.Item.Title)
	for _, it := range d.Related {
		fmt.Println(" related:", it.Title)
	}
	// Output:
	// Notre-Dame Cathedral
	//  related: Colosseum
	//  related: Stonehenge
	//  related: Acropolis of Athens
}
