package app

import (
	"strconv"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/store"
	"github.com/riordanpawley/laneboard/internal/ui/overlay"
)

func viewItems(views []domain.SavedView) []overlay.Item {
	items := make([]overlay.Item, 0, len(views))
	for _, v := range views {
		items = append(items, overlay.Item{ID: v.ID, Label: v.Name})
	}
	return items
}

func formItems(forms []domain.CardForm) []overlay.Item {
	items := make([]overlay.Item, 0, len(forms))
	for _, f := range forms {
		detail := ""
		if n := len(f.Fields()); n > 0 {
			detail = strconv.Itoa(n) + " fields"
		}
		items = append(items, overlay.Item{ID: f.ID, Label: f.Name, Detail: detail})
	}
	return items
}

// stateItems lists the state options and the ids currently filtered on
func stateItems(st store.State) ([]overlay.Item, []string) {
	var items []overlay.Item
	if st.StateMetadata != nil {
		for _, o := range st.StateMetadata.Options() {
			items = append(items, overlay.Item{ID: strconv.Itoa(o.Value), Label: o.Label})
		}
	}
	var checked []string
	for _, o := range st.StateFilter.Options() {
		checked = append(checked, strconv.Itoa(o.Value))
	}
	return items, checked
}

func selectedViewID(st store.State) string {
	if st.SelectedView == nil {
		return ""
	}
	return st.SelectedView.ID
}

func selectedFormID(st store.State) string {
	if st.SelectedForm == nil {
		return ""
	}
	return st.SelectedForm.ID
}
