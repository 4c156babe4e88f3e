package utils

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// LevelDebug ~ LevelPanic : 0 ~ 4
const (
	LevelDebug = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelPanic
)

var logLevelMap = map[int]string{
	0: "Debug",
	1: "Info",
	2: "Warning",
	3: "Error",
	4: "Panic",
}

// Logger : log输出对象的结构体
// 零值Logger不输出任何内容
type Logger struct {
	level    int
	fileName string
	l        *log.Logger
}

func (logger *Logger) SetLoggerLevel(level int) error {
	if level < LevelDebug || level > LevelPanic {
		str := "input error level must set:\n"
		for i := LevelDebug; i <= LevelPanic; i++ {
			str += fmt.Sprintf("%d: %s\t", i, logLevelMap[i])
		}
		return errors.New(str)
	}
	logger.level = level
	return nil
}

// Level 返回当前输出等级
func (logger *Logger) Level() int {
	return logger.level
}

// LevelFromString 将配置中的等级名称转换为等级常量，大小写不敏感
func LevelFromString(name string) (int, error) {
	for i, v := range logLevelMap {
		if strings.EqualFold(v, name) {
			return i, nil
		}
	}
	if strings.EqualFold(name, "warn") {
		return LevelWarning, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

func (logger *Logger) InitLogger(fileName string, level int) error {
	err := logger.SetLoggerLevel(level)
	if err != nil {
		return err
	}
	// 若未向方法中传入log文件路径，结构体中也没有log文件内容存储，则打印到标准输出
	if fileName == "" && logger.fileName == "" {
		logger.l = log.New(os.Stdout, "", log.Ldate|log.Ltime|log.Lshortfile)
		return nil
	}

	if fileName == "" {
		fileName = logger.fileName
	}
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	logger.fileName = fileName
	logger.l = log.New(file, "", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

// SetOutput 将日志重定向到w
func (logger *Logger) SetOutput(w io.Writer) {
	logger.l = log.New(w, "", log.Ldate|log.Ltime|log.Lshortfile)
}

// Enabled 判断该等级的日志是否会被输出
func (logger *Logger) Enabled(level int) bool {
	return logger.l != nil && logger.level <= level
}

func (logger *Logger) output(level int, prefix, msg string) {
	if !logger.Enabled(level) {
		return
	}
	logger.l.SetPrefix(prefix)
	logger.l.Output(3, msg)
}

func (logger *Logger) Debug(args ...interface{}) {
	logger.output(LevelDebug, "Debug ", fmt.Sprintln(args...))
}

func (logger *Logger) Debugf(format string, args ...interface{}) {
	logger.output(LevelDebug, "Debug ", fmt.Sprintf(format, args...))
}

func (logger *Logger) Info(args ...interface{}) {
	logger.output(LevelInfo, "Info ", fmt.Sprintln(args...))
}

func (logger *Logger) Infof(format string, args ...interface{}) {
	logger.output(LevelInfo, "Info ", fmt.Sprintf(format, args...))
}

func (logger *Logger) Warning(args ...interface{}) {
	logger.output(LevelWarning, "Warning ", fmt.Sprintln(args...))
}

func (logger *Logger) Warningf(format string, args ...interface{}) {
	logger.output(LevelWarning, "Warning ", fmt.Sprintf(format, args...))
}

func (logger *Logger) Error(args ...interface{}) {
	logger.output(LevelError, "Error ", fmt.Sprintln(args...))
}

func (logger *Logger) Errorf(format string, args ...interface{}) {
	logger.output(LevelError, "Error ", fmt.Sprintf(format, args...))
}

// Panic 只记录日志，不会触发panic
func (logger *Logger) Panic(args ...interface{}) {
	logger.output(LevelPanic, "Panic ", fmt.Sprintln(args...))
}
