package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"gorm.io/datatypes"

	"jobtrack-go/internal/storage/models"
)

func runAddInterview(args []string) error {
	fs := pflag.NewFlagSet("add-interview", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	applicationID := fs.String("application", "", "申请ID (必填)")
	interviewDate := fs.String("date", time.Now().Format(dateLayout), "面试日期 (YYYY-MM-DD)")
	interviewTime := fs.String("time", "", "面试时间 (HH:MM)")
	interviewType := fs.String("type", "", "面试类型 (必填): phone, video, onsite, technical, behavioral, panel, hr, case_study, presentation")
	round := fs.Int("round", 1, "面试轮次")
	duration := fs.Int("duration", 0, "时长（分钟）")
	interviewer := fs.String("interviewer", "", "面试官姓名")
	interviewerTitle := fs.String("interviewer-title", "", "面试官职位")
	panelSize := fs.Int("panel-size", 1, "面试官人数")
	topics := fs.String("topics", "", "面试主题，逗号分隔")
	result := fs.String("result", "", "面试结果: passed, failed, pending, cancelled")
	notes := fs.String("notes", "", "个人笔记")
	location := fs.String("location", "", "面试地点")
	meetingLink := fs.String("link", "", "会议链接")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *applicationID == "" || *interviewType == "" {
		return fmt.Errorf("--application 和 --type 为必填项")
	}
	date, err := parseDate(*interviewDate)
	if err != nil {
		return err
	}

	_, db, err := openStorage(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	interview := &models.Interview{
		ApplicationID:    *applicationID,
		InterviewDate:    datatypes.Date(date),
		InterviewTime:    *interviewTime,
		DurationMinutes:  *duration,
		InterviewType:    models.InterviewType(*interviewType),
		RoundNumber:      *round,
		InterviewerName:  *interviewer,
		InterviewerTitle: *interviewerTitle,
		PanelSize:        *panelSize,
		Result:           models.InterviewResult(*result),
		PersonalNotes:    *notes,
		Location:         *location,
		MeetingLink:      *meetingLink,
	}
	if err := interview.SetTopics(splitCSV(*topics)); err != nil {
		return err
	}

	if err := db.CreateInterview(context.Background(), interview); err != nil {
		return err
	}

	fmt.Printf("面试已记录: #%d（申请 %s，第%d轮 %s）\n",
		interview.InterviewID, interview.ApplicationID, interview.RoundNumber, interview.InterviewType)
	return nil
}

func runInterviews(args []string) error {
	fs := pflag.NewFlagSet("interviews", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径")
	applicationID := fs.String("application", "", "只看指定申请的面试")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, db, err := openStorage(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	interviews, err := db.ListInterviews(context.Background(), *applicationID)
	if err != nil {
		return err
	}

	if len(interviews) == 0 {
		fmt.Println("没有面试记录。")
		return nil
	}

	fmt.Printf("%-6s  %-36s  %-12s  %-6s  %-12s  %s\n",
		"ID", "APPLICATION", "DATE", "ROUND", "TYPE", "RESULT")
	for _, iv := range interviews {
		result := string(iv.Result)
		if result == "" {
			result = "-"
		}
		fmt.Printf("%-6d  %-36s  %-12s  %-6d  %-12s  %s\n",
			iv.InterviewID,
			iv.ApplicationID,
			time.Time(iv.InterviewDate).Format(dateLayout),
			iv.RoundNumber,
			iv.InterviewType,
			result)
	}
	fmt.Printf("\n共 %d 场。\n", len(interviews))
	return nil
}
