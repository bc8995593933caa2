package protocol

import "fmt"

// Command opcodes, one byte each, ordered by code. Get/set pairs are adjacent
// in the protocol but not always in the obvious order (power state get is the
// higher code, backlight get is the lower).
const (
	CmdCommunicationControl    = 0x00
	CmdColorTemperatureFineSet = 0x11
	CmdColorTemperatureFineGet = 0x12
	CmdSerialGet               = 0x15
	CmdPowerStateSet           = 0x18
	CmdPowerStateGet           = 0x19
	CmdRemoteLockSet           = 0x1C
	CmdRemoteLockGet           = 0x1D
	CmdOSDInfoSet              = 0x2C
	CmdOSDInfoGet              = 0x2D
	CmdTemperatureGet          = 0x2F
	CmdVideoParametersSet      = 0x32
	CmdVideoParametersGet      = 0x33
	CmdColorTemperatureSet     = 0x34
	CmdColorTemperatureGet     = 0x35
	CmdPowerOnLogoSet          = 0x3E
	CmdPowerOnLogoGet          = 0x3F
	CmdVolumeSet               = 0x44
	CmdVolumeGet               = 0x45
	CmdMuteGet                 = 0x46
	CmdMuteSet                 = 0x47
	CmdVideoSignalGet          = 0x59
	CmdGroupIDSet              = 0x5C
	CmdGroupIDGet              = 0x5D
	CmdPictureStyleGet         = 0x65
	CmdPictureStyleSet         = 0x66
	CmdMonitorIDSet            = 0x69
	CmdTestPatternGet          = 0x6C
	CmdTestPatternSet          = 0x6D
	CmdBacklightGet            = 0x71
	CmdBacklightSet            = 0x72
	CmdAVMuteGet               = 0x7A
	CmdAVMuteSet               = 0x7B
	CmdIPParameterGet          = 0x82
	CmdWOLGet                  = 0x9C
	CmdWOLSet                  = 0x9D
	CmdModelInfoGet            = 0xA1
	CmdSICPInfoGet             = 0xA2
	CmdColdStartSet            = 0xA3
	CmdColdStartGet            = 0xA4
	CmdInputSourceSet          = 0xAC
	CmdCurrentSourceGet        = 0xAD
	CmdAutoSignalSet           = 0xAE
	CmdAutoSignalGet           = 0xAF
	CmdAndroid4KGet            = 0xC6
	CmdAndroid4KSet            = 0xC7
	CmdAPMSet                  = 0xD0
	CmdAPMGet                  = 0xD1
	CmdPowerSaveSet            = 0xD2
	CmdPowerSaveGet            = 0xD3
	CmdSmartPowerSet           = 0xDD
	CmdSmartPowerGet           = 0xDE
	CmdRemoteControlSim        = 0xFE
)

// Power state parameters
const (
	PowerOff = 0x01
	PowerOn  = 0x02
)

// Backlight parameters. Note the inversion relative to power state: 0x00
// means the backlight is on.
const (
	BacklightOn  = 0x00
	BacklightOff = 0x01
)

// ParamNoChange is the "leave this setting alone" sentinel used by
// multi-parameter set commands (video parameters, volume).
const ParamNoChange = 0xFF

// TemperatureAbsent marks an unpopulated sensor slot in a temperature
// response payload.
const TemperatureAbsent = 0xFF

// CommandName returns a human-readable name for an opcode, for logging and
// diagnostics. Unknown opcodes format as hex.
func CommandName(command byte) string {
	switch command {
	case CmdCommunicationControl:
		return "CommunicationControl"
	case CmdColorTemperatureFineSet:
		return "ColorTemperatureFineSet"
	case CmdColorTemperatureFineGet:
		return "ColorTemperatureFineGet"
	case CmdSerialGet:
		return "SerialGet"
	case CmdPowerStateSet:
		return "PowerStateSet"
	case CmdPowerStateGet:
		return "PowerStateGet"
	case CmdRemoteLockSet:
		return "RemoteLockSet"
	case CmdRemoteLockGet:
		return "RemoteLockGet"
	case CmdOSDInfoSet:
		return "OSDInfoSet"
	case CmdOSDInfoGet:
		return "OSDInfoGet"
	case CmdTemperatureGet:
		return "TemperatureGet"
	case CmdVideoParametersSet:
		return "VideoParametersSet"
	case CmdVideoParametersGet:
		return "VideoParametersGet"
	case CmdColorTemperatureSet:
		return "ColorTemperatureSet"
	case CmdColorTemperatureGet:
		return "ColorTemperatureGet"
	case CmdPowerOnLogoSet:
		return "PowerOnLogoSet"
	case CmdPowerOnLogoGet:
		return "PowerOnLogoGet"
	case CmdVolumeSet:
		return "VolumeSet"
	case CmdVolumeGet:
		return "VolumeGet"
	case CmdMuteGet:
		return "MuteGet"
	case CmdMuteSet:
		return "MuteSet"
	case CmdVideoSignalGet:
		return "VideoSignalGet"
	case CmdGroupIDSet:
		return "GroupIDSet"
	case CmdGroupIDGet:
		return "GroupIDGet"
	case CmdPictureStyleGet:
		return "PictureStyleGet"
	case CmdPictureStyleSet:
		return "PictureStyleSet"
	case CmdMonitorIDSet:
		return "MonitorIDSet"
	case CmdTestPatternGet:
		return "TestPatternGet"
	case CmdTestPatternSet:
		return "TestPatternSet"
	case CmdBacklightGet:
		return "BacklightGet"
	case CmdBacklightSet:
		return "BacklightSet"
	case CmdAVMuteGet:
		return "AVMuteGet"
	case CmdAVMuteSet:
		return "AVMuteSet"
	case CmdIPParameterGet:
		return "IPParameterGet"
	case CmdWOLGet:
		return "WOLGet"
	case CmdWOLSet:
		return "WOLSet"
	case CmdModelInfoGet:
		return "ModelInfoGet"
	case CmdSICPInfoGet:
		return "SICPInfoGet"
	case CmdColdStartSet:
		return "ColdStartSet"
	case CmdColdStartGet:
		return "ColdStartGet"
	case CmdInputSourceSet:
		return "InputSourceSet"
	case CmdCurrentSourceGet:
		return "CurrentSourceGet"
	case CmdAutoSignalSet:
		return "AutoSignalSet"
	case CmdAutoSignalGet:
		return "AutoSignalGet"
	case CmdAndroid4KGet:
		return "Android4KGet"
	case CmdAndroid4KSet:
		return "Android4KSet"
	case CmdAPMSet:
		return "APMSet"
	case CmdAPMGet:
		return "APMGet"
	case CmdPowerSaveSet:
		return "PowerSaveSet"
	case CmdPowerSaveGet:
		return "PowerSaveGet"
	case CmdSmartPowerSet:
		return "SmartPowerSet"
	case CmdSmartPowerGet:
		return "SmartPowerGet"
	case CmdRemoteControlSim:
		return "RemoteControlSim"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", command)
	}
}
