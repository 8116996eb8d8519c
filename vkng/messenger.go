package vkng

import (
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

// NewDebugMessenger routes validation messages to logger. The instance must have
// been created with the debug utils extension.
func NewDebugMessenger(instance core1_0.Instance, logger log.FieldLogger) (ext_debug_utils.DebugUtilsMessenger, error) {
	extension := ext_debug_utils.CreateExtensionFromInstance(instance)
	messenger, _, err := extension.CreateDebugUtilsMessenger(instance, nil, DebugMessengerCreateInfo(logger))
	return messenger, err
}

// DebugMessengerCreateInfo subscribes to errors and warnings, and to info and
// verbose messages as well when logger has debug output enabled.
func DebugMessengerCreateInfo(logger log.FieldLogger) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	severity := ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning
	if debugEnabled(logger) {
		severity |= ext_debug_utils.SeverityInfo | ext_debug_utils.SeverityVerbose
	}

	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: severity,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    debugCallback(logger),
	}
}

func debugEnabled(logger log.FieldLogger) bool {
	switch l := logger.(type) {
	case *log.Logger:
		return l.IsLevelEnabled(log.DebugLevel)
	case *log.Entry:
		return l.Logger.IsLevelEnabled(log.DebugLevel)
	default:
		return false
	}
}

func debugCallback(logger log.FieldLogger) func(ext_debug_utils.DebugUtilsMessageTypeFlags, ext_debug_utils.DebugUtilsMessageSeverityFlags, *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	return func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
		entry := logger.WithField("type", msgType)

		switch {
		case severity&ext_debug_utils.SeverityError != 0:
			entry.Error(data.Message)
		case severity&ext_debug_utils.SeverityWarning != 0:
			entry.Warn(data.Message)
		case severity&ext_debug_utils.SeverityInfo != 0:
			entry.Info(data.Message)
		default:
			entry.Debug(data.Message)
		}

		// Never abort the call that triggered the message.
		return false
	}
}
