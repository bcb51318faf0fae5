package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	"github.com/m04kA/PMS-SchedulingService/pkg/types"
)

// Config конфигурация сервиса, загружается из toml-файла
type Config struct {
	Server          ServerConfig       `toml:"server"`
	Database        DatabaseConfig     `toml:"database"`
	Logs            LogsConfig         `toml:"logs"`
	Metrics         MetricsConfig      `toml:"metrics"`
	IdentityService ServiceClientConfig `toml:"identity_service"`
	Calendar        CalendarConfig     `toml:"calendar"`
	AppointmentTypes []AppointmentType `toml:"appointment_types"`
	Scheduling      SchedulingConfig   `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к базе данных
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ServiceClientConfig настройки HTTP клиента внешнего сервиса
type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// CalendarConfig рабочий календарь из конфигурации
type CalendarConfig struct {
	Timezone  string          `toml:"timezone"`
	Monday    DayConfig       `toml:"monday"`
	Tuesday   DayConfig       `toml:"tuesday"`
	Wednesday DayConfig       `toml:"wednesday"`
	Thursday  DayConfig       `toml:"thursday"`
	Friday    DayConfig       `toml:"friday"`
	Saturday  DayConfig       `toml:"saturday"`
	Sunday    DayConfig       `toml:"sunday"`
	Breaks    []BreakConfig   `toml:"breaks"`
	Holidays  []string        `toml:"holidays"`
}

// DayConfig часы работы одного дня недели
type DayConfig struct {
	IsOpen    bool   `toml:"is_open"`
	OpenTime  string `toml:"open_time"`
	CloseTime string `toml:"close_time"`
}

// BreakConfig перерыв внутри рабочего дня
type BreakConfig struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// AppointmentType тип приёма из справочника
type AppointmentType struct {
	Name            string `toml:"name"`
	DurationMinutes int    `toml:"duration_minutes"`
}

// SchedulingConfig глобальные настройки расчёта слотов
// Могут быть переопределены per-resource записями в schedule_config
type SchedulingConfig struct {
	SlotGranularityMinutes int `toml:"slot_granularity_minutes"`
	BufferMinutes          int `toml:"buffer_minutes"`
	MinNoticeMinutes       int `toml:"min_notice_minutes"`
	MaxAdvanceDays         int `toml:"max_advance_days"`
	MaxConsecutive         int `toml:"max_consecutive"`
}

// Load загружает конфигурацию из toml-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort == 0 {
		return fmt.Errorf("config: server.http_port is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Calendar.Timezone == "" {
		return fmt.Errorf("config: calendar.timezone is required")
	}
	if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("config: invalid calendar.timezone %q: %w", c.Calendar.Timezone, err)
	}
	for _, t := range c.AppointmentTypes {
		if t.Name == "" || t.DurationMinutes <= 0 {
			return fmt.Errorf("config: appointment type %q must have a name and a positive duration", t.Name)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Scheduling.SlotGranularityMinutes == 0 {
		c.Scheduling.SlotGranularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	if c.Scheduling.BufferMinutes == 0 {
		c.Scheduling.BufferMinutes = domain.DefaultBufferMinutes
	}
	if c.Scheduling.MinNoticeMinutes == 0 {
		c.Scheduling.MinNoticeMinutes = domain.DefaultMinNoticeMinutes
	}
	if c.Scheduling.MaxAdvanceDays == 0 {
		c.Scheduling.MaxAdvanceDays = domain.DefaultMaxAdvanceDays
	}
	if c.Scheduling.MaxConsecutive == 0 {
		c.Scheduling.MaxConsecutive = domain.DefaultMaxConsecutive
	}
}

// BusinessCalendar конвертирует конфигурацию в доменный календарь
func (c *Config) BusinessCalendar() (*domain.BusinessCalendar, error) {
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone: %w", err)
	}

	cal := &domain.BusinessCalendar{
		Location: loc,
		Holidays: make(map[string]bool, len(c.Calendar.Holidays)),
	}

	days := []struct {
		src DayConfig
		dst *domain.DaySchedule
	}{
		{c.Calendar.Monday, &cal.Monday},
		{c.Calendar.Tuesday, &cal.Tuesday},
		{c.Calendar.Wednesday, &cal.Wednesday},
		{c.Calendar.Thursday, &cal.Thursday},
		{c.Calendar.Friday, &cal.Friday},
		{c.Calendar.Saturday, &cal.Saturday},
		{c.Calendar.Sunday, &cal.Sunday},
	}

	for _, day := range days {
		schedule, err := toDaySchedule(day.src)
		if err != nil {
			return nil, err
		}
		*day.dst = schedule
	}

	for _, br := range c.Calendar.Breaks {
		start, err := types.NewTimeStringFromString(br.Start)
		if err != nil {
			return nil, fmt.Errorf("config: invalid break start: %w", err)
		}
		end, err := types.NewTimeStringFromString(br.End)
		if err != nil {
			return nil, fmt.Errorf("config: invalid break end: %w", err)
		}
		cal.Breaks = append(cal.Breaks, domain.BreakWindow{Start: start, End: end})
	}

	for _, holiday := range c.Calendar.Holidays {
		if _, err := time.Parse(domain.DateFormat, holiday); err != nil {
			return nil, fmt.Errorf("config: invalid holiday date %q: %w", holiday, err)
		}
		cal.Holidays[holiday] = true
	}

	return cal, nil
}

func toDaySchedule(day DayConfig) (domain.DaySchedule, error) {
	if !day.IsOpen {
		return domain.DaySchedule{IsOpen: false}, nil
	}

	open, err := types.NewTimeStringFromString(day.OpenTime)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("config: invalid open_time: %w", err)
	}
	close, err := types.NewTimeStringFromString(day.CloseTime)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("config: invalid close_time: %w", err)
	}

	return domain.DaySchedule{IsOpen: true, OpenTime: open, CloseTime: close}, nil
}

// TypeCatalog конвертирует список типов приёмов в справочник
func (c *Config) TypeCatalog() domain.AppointmentTypeCatalog {
	catalog := make(domain.AppointmentTypeCatalog, len(c.AppointmentTypes))
	for _, t := range c.AppointmentTypes {
		catalog[t.Name] = t.DurationMinutes
	}
	return catalog
}

// GlobalScheduleConfig возвращает глобальные настройки расчёта слотов
func (c *Config) GlobalScheduleConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		SlotGranularityMinutes: c.Scheduling.SlotGranularityMinutes,
		BufferMinutes:          c.Scheduling.BufferMinutes,
		MinNoticeMinutes:       c.Scheduling.MinNoticeMinutes,
		MaxAdvanceDays:         c.Scheduling.MaxAdvanceDays,
		MaxConsecutive:         c.Scheduling.MaxConsecutive,
	}
}
