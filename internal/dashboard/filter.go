package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateRange 面板统计的日期过滤区间，边界均为含
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateFilter 解析日期过滤表达式，支持：
//
//	"last N days"、"last N months"、"this year"、"YYYY-MM-DD:YYYY-MM-DD"
//
// 空串返回(nil, nil)表示不过滤，无法解析时返回错误。
func ParseDateFilter(expr string, now time.Time) (*DateRange, error) {
	expr = strings.TrimSpace(strings.ToLower(expr))
	if expr == "" {
		return nil, nil
	}

	if strings.Contains(expr, "last") {
		fields := strings.Fields(expr)
		if len(fields) >= 3 {
			n, err := strconv.Atoi(fields[1])
			if err == nil && n > 0 {
				switch {
				case strings.HasPrefix(fields[2], "day"):
					return &DateRange{Start: now.AddDate(0, 0, -n), End: now}, nil
				case strings.HasPrefix(fields[2], "month"):
					// 按30天/月折算
					return &DateRange{Start: now.AddDate(0, 0, -n*30), End: now}, nil
				}
			}
		}
		return nil, fmt.Errorf("无法解析日期过滤表达式: %q", expr)
	}

	if strings.Contains(expr, "this year") {
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return &DateRange{Start: start, End: now}, nil
	}

	if strings.Contains(expr, ":") {
		parts := strings.SplitN(expr, ":", 2)
		start, err := time.Parse("2006-01-02", strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("无法解析起始日期 %q: %w", parts[0], err)
		}
		end, err := time.Parse("2006-01-02", strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("无法解析结束日期 %q: %w", parts[1], err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("结束日期早于起始日期: %q", expr)
		}
		return &DateRange{Start: start, End: end}, nil
	}

	return nil, fmt.Errorf("无法解析日期过滤表达式: %q", expr)
}
