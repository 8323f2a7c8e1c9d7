package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gorm.io/datatypes"

	"jobtrack-go/internal/storage"
	"jobtrack-go/internal/storage/models"
)

const dateLayout = "2006-01-02"

// parseDate 解析YYYY-MM-DD格式日期
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("日期必须是YYYY-MM-DD格式: %q", value)
	}
	return date, nil
}

// splitCSV 切分逗号分隔的参数并去除空白项
func splitCSV(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func runAdd(args []string) error {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	company := fs.String("company", "", "公司名称 (必填)")
	position := fs.String("position", "", "职位名称 (必填)")
	jobURL := fs.String("url", "", "职位链接")
	jobDescription := fs.String("description", "", "职位描述")
	location := fs.String("location", "", "工作地点")
	salary := fs.String("salary", "", "薪资范围")
	employmentType := fs.String("type", string(models.EmploymentFullTime), "雇佣类型")
	appliedDate := fs.String("date", time.Now().Format(dateLayout), "申请日期 (YYYY-MM-DD)")
	status := fs.String("status", string(models.StatusApplied), "申请状态")
	source := fs.String("source", "", "申请渠道")
	resumeVersion := fs.String("resume-version", "", "投递的简历版本")
	coverLetter := fs.Bool("cover-letter", false, "是否附了求职信")
	keywordList := fs.String("keywords", "", "目标关键词，逗号分隔")
	notes := fs.String("notes", "", "备注")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *company == "" || *position == "" {
		return fmt.Errorf("--company 和 --position 为必填项")
	}
	date, err := parseDate(*appliedDate)
	if err != nil {
		return err
	}

	_, db, err := openStorage(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	app := &models.Application{
		Company:         *company,
		Position:        *position,
		JobURL:          *jobURL,
		JobDescription:  *jobDescription,
		Location:        *location,
		SalaryRange:     *salary,
		EmploymentType:  models.EmploymentType(*employmentType),
		AppliedDate:     datatypes.Date(date),
		Status:          models.ApplicationStatus(*status),
		Source:          *source,
		ResumeVersion:   *resumeVersion,
		CoverLetterUsed: *coverLetter,
		Notes:           *notes,
	}
	if err := app.SetKeywords(splitCSV(*keywordList)); err != nil {
		return err
	}

	if err := db.CreateApplication(context.Background(), app); err != nil {
		return err
	}

	fmt.Printf("申请已创建: %s\n", app.ApplicationID)
	fmt.Printf("  %s - %s (%s)\n", app.Company, app.Position, app.Status)
	return nil
}

func runList(args []string) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	status := fs.String("status", "", "按状态过滤")
	company := fs.String("company", "", "按公司名模糊过滤")
	limit := fs.Int("limit", 0, "最多返回条数，0为不限")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, db, err := openStorage(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	apps, err := db.ListApplications(context.Background(), storage.ApplicationFilter{
		Status:  models.ApplicationStatus(*status),
		Company: *company,
		Limit:   *limit,
	})
	if err != nil {
		return err
	}

	if len(apps) == 0 {
		fmt.Println("没有符合条件的申请记录。")
		return nil
	}

	fmt.Printf("%-36s  %-12s  %-25s  %-25s  %s\n", "ID", "DATE", "COMPANY", "POSITION", "STATUS")
	for _, app := range apps {
		fmt.Printf("%-36s  %-12s  %-25s  %-25s  %s\n",
			app.ApplicationID,
			time.Time(app.AppliedDate).Format(dateLayout),
			truncate(app.Company, 25),
			truncate(app.Position, 25),
			app.Status)
	}
	fmt.Printf("\n共 %d 条。\n", len(apps))
	return nil
}

func runShow(args []string) error {
	fs := pflag.NewFlagSet("show", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("用法: jobtrack show <application-id>")
	}

	_, db, err := openStorage(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	app, err := db.GetApplication(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("ID:        %s\n", app.ApplicationID)
	fmt.Printf("公司:      %s\n", app.Company)
	fmt.Printf("职位:      %s\n", app.Position)
	fmt.Printf("状态:      %s\n", app.Status)
	fmt.Printf("申请日期:  %s\n", time.Time(app.AppliedDate).Format(dateLayout))
	fmt.Printf("雇佣类型:  %s\n", app.EmploymentType)
	if app.Location != "" {
		fmt.Printf("地点:      %s\n", app.Location)
	}
	if app.SalaryRange != "" {
		fmt.Printf("薪资:      %s\n", app.SalaryRange)
	}
	if app.Source != "" {
		fmt.Printf("渠道:      %s\n", app.Source)
	}
	if app.JobURL != "" {
		fmt.Printf("链接:      %s\n", app.JobURL)
	}
	if keywords, err := app.Keywords(); err == nil && len(keywords) > 0 {
		fmt.Printf("关键词:    %s\n", strings.Join(keywords, ", "))
	}
	if app.Notes != "" {
		fmt.Printf("备注:      %s\n", app.Notes)
	}

	if len(app.Stages) > 0 {
		fmt.Println("\n状态历史:")
		for _, stage := range app.Stages {
			fmt.Printf("  %s  %-13s %s\n",
				time.Time(stage.StageDate).Format(dateLayout), stage.Status, stage.Notes)
		}
	}
	if len(app.Interviews) > 0 {
		fmt.Println("\n面试:")
		for _, iv := range app.Interviews {
			fmt.Printf("  #%d  %s  第%d轮 %s", iv.InterviewID,
				time.Time(iv.InterviewDate).Format(dateLayout), iv.RoundNumber, iv.InterviewType)
			if iv.Result != "" {
				fmt.Printf("  [%s]", iv.Result)
			}
			fmt.Println()
		}
	}
	return nil
}

func runUpdate(args []string) error {
	fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	status := fs.String("status", "", "新状态")
	notes := fs.String("notes", "", "备注")
	salary := fs.String("salary", "", "薪资范围")
	location := fs.String("location", "", "工作地点")
	lastContact := fs.String("last-contact", "", "最近联系日期 (YYYY-MM-DD)")
	nextFollowup := fs.String("next-followup", "", "下次跟进日期 (YYYY-MM-DD)")
	resumeVersion := fs.String("resume-version", "", "简历版本")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("用法: jobtrack update <application-id> [flags]")
	}

	updates := map[string]interface{}{}
	if fs.Changed("status") {
		updates["status"] = models.ApplicationStatus(*status)
	}
	if fs.Changed("notes") {
		updates["notes"] = *notes
	}
	if fs.Changed("salary") {
		updates["salary_range"] = *salary
	}
	if fs.Changed("location") {
		updates["location"] = *location
	}
	if fs.Changed("resume-version") {
		updates["resume_version"] = *resumeVersion
	}
	if fs.Changed("last-contact") {
		date, err := parseDate(*lastContact)
		if err != nil {
			return err
		}
		updates["last_contact_date"] = datatypes.Date(date)
	}
	if fs.Changed("next-followup") {
		date, err := parseDate(*nextFollowup)
		if err != nil {
			return err
		}
		updates["next_followup_date"] = datatypes.Date(date)
	}
	if len(updates) == 0 {
		return fmt.Errorf("没有指定任何要更新的字段")
	}

	_, db, err := openStorage(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	app, err := db.UpdateApplication(context.Background(), fs.Arg(0), updates)
	if err != nil {
		return err
	}

	fmt.Printf("申请已更新: %s (%s - %s, %s)\n",
		app.ApplicationID, app.Company, app.Position, app.Status)
	return nil
}

func runDelete(args []string) error {
	fs := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	yes := fs.BoolP("yes", "y", false, "跳过确认")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("用法: jobtrack delete <application-id>")
	}
	id := fs.Arg(0)

	_, db, err := openStorage(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if !*yes {
		app, err := db.GetApplication(context.Background(), id)
		if err != nil {
			return err
		}
		fmt.Printf("即将删除: %s - %s（含 %d 场面试）。输入y确认: ",
			app.Company, app.Position, len(app.Interviews))
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("已取消。")
			return nil
		}
	}

	if err := db.DeleteApplication(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("申请已删除: %s\n", id)
	return nil
}

// truncate 截断过长的展示字段
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
