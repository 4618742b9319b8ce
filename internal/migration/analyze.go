package migration

import (
	"sort"
	"strings"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/grouping"
	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// GroupProfile summarizes one product group for pre-flight analysis.
type GroupProfile struct {
	BaseName string
	Records  int
}

// Summary is the pre-flight view of a source file: how it will group and
// where the migration is going to lose rows.
type Summary struct {
	TotalRows     int
	TotalGroups   int
	SingleRecord  int // groups that will become single products
	MultiRecord   int // groups that will carry variants
	NoImageGroups int // groups with no image anywhere (will be skipped)
	NoPriceRows   int // records with no positive price-like field
	Largest       []GroupProfile
}

// Analyze partitions the source without emitting anything and reports the
// shape of the coming migration.
func Analyze(records []models.RawRecord, g *grouping.Grouper) Summary {
	s := Summary{TotalRows: len(records)}
	groups := g.Partition(records)
	s.TotalGroups = len(groups)

	for _, grp := range groups {
		if len(grp.Records) == 1 {
			s.SingleRecord++
		} else {
			s.MultiRecord++
		}
		hasImage := false
		for _, rec := range grp.Records {
			if hasImageField(rec) {
				hasImage = true
			}
			if !hasOwnPrice(rec) {
				s.NoPriceRows++
			}
		}
		if !hasImage {
			s.NoImageGroups++
		}
		s.Largest = append(s.Largest, GroupProfile{BaseName: grp.BaseName, Records: len(grp.Records)})
	}

	sort.SliceStable(s.Largest, func(i, j int) bool {
		return s.Largest[i].Records > s.Largest[j].Records
	})
	if len(s.Largest) > 10 {
		s.Largest = s.Largest[:10]
	}
	return s
}

func hasImageField(rec models.RawRecord) bool {
	for _, col := range rec.Header {
		if strings.Contains(strings.ToLower(col), "image") && strings.TrimSpace(rec.Get(col)) != "" {
			return true
		}
	}
	return false
}
