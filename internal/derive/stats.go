package derive

import "github.com/verte-zerg/uelist/internal/model"

// ComputeStats summarizes filtered. Selected is the global selection size and
// is reported as given.
func ComputeStats(filtered []model.Ue, selected int) model.Stats {
	total := sumEcts(filtered)
	avg := 0.0
	if len(filtered) > 0 {
		avg = float64(total) / float64(len(filtered))
	}
	return model.Stats{
		Total:        len(filtered),
		Selected:     selected,
		TotalEcts:    total,
		AvgEcts:      avg,
		ByDepartment: groupByDepartment(filtered),
	}
}

func sumEcts(records []model.Ue) int {
	sum := 0
	for _, ue := range records {
		sum += ue.Ects
	}
	return sum
}

// groupByDepartment counts records per department in first-seen order.
func groupByDepartment(records []model.Ue) []model.DepartmentCount {
	var out []model.DepartmentCount
	index := map[string]int{}
	for _, ue := range records {
		i, ok := index[ue.Department]
		if !ok {
			i = len(out)
			index[ue.Department] = i
			out = append(out, model.DepartmentCount{Department: ue.Department})
		}
		out[i].Count++
	}
	return out
}
