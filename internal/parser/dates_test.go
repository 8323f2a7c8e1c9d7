package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobtrack-go/internal/types"
)

// TestExtractDateRange 验证各种日期写法和优先级
func TestExtractDateRange(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.DateRange
		ok   bool
	}{
		{
			name: "月份-年份区间",
			text: "Jan 2020 - Mar 2023",
			want: types.DateRange{Start: "Jan 2020", End: "Mar 2023"},
			ok:   true,
		},
		{
			name: "完整月份名",
			text: "January 2020 - December 2021",
			want: types.DateRange{Start: "January 2020", End: "December 2021"},
			ok:   true,
		},
		{
			name: "Present开放区间",
			text: "Jan 2020 - Present",
			want: types.DateRange{Start: "Jan 2020", End: "Present"},
			ok:   true,
		},
		{
			name: "Current归一化为Present",
			text: "Mar 2021 to Current",
			want: types.DateRange{Start: "Mar 2021", End: "Present"},
			ok:   true,
		},
		{
			name: "数字月份格式",
			text: "01/2020 - 06/2022",
			want: types.DateRange{Start: "01/2020", End: "06/2022"},
			ok:   true,
		},
		{
			name: "纯年份区间",
			text: "2016 - 2020",
			want: types.DateRange{Start: "2016", End: "2020"},
			ok:   true,
		},
		{
			name: "月-年优先于纯年份",
			text: "Jan 2020",
			want: types.DateRange{Start: "Jan 2020"},
			ok:   true,
		},
		{
			name: "只有起始日期",
			text: "Joined in 2019",
			want: types.DateRange{Start: "2019"},
			ok:   true,
		},
		{
			name: "没有日期",
			text: "Senior Software Engineer",
			ok:   false,
		},
		{
			name: "1800年代不算年份",
			text: "Room 1850",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDateRange(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
