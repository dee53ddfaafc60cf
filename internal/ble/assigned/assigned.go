// Package assigned holds lookup tables for Bluetooth SIG assigned numbers:
// GAP appearance values and 16-bit GATT service identifiers.
//
// https://www.bluetooth.com/specifications/assigned-numbers/
package assigned

import (
	"strings"
)

var appearances = map[int]string{
	0:    "Unknown",
	64:   "Generic Phone",
	128:  "Generic Computer",
	192:  "Generic Watch",
	193:  "Watch: Sports Watch",
	256:  "Generic Clock",
	320:  "Generic Display",
	384:  "Generic Remote Control",
	448:  "Generic Eye-glasses",
	512:  "Generic Tag",
	576:  "Generic Keyring",
	640:  "Generic Media Player",
	704:  "Generic Barcode Scanner",
	768:  "Generic Thermometer",
	769:  "Thermometer: Ear",
	832:  "Generic Heart Rate Sensor",
	833:  "Heart Rate Sensor: Heart Rate Belt",
	896:  "Generic Blood Pressure",
	897:  "Blood Pressure: Arm",
	898:  "Blood Pressure: Wrist",
	960:  "Human Interface Device (HID)",
	961:  "Keyboard",
	962:  "Mouse",
	963:  "Joystick",
	964:  "Gamepad",
	965:  "Digitizer Tablet",
	966:  "Card Reader",
	967:  "Digital Pen",
	968:  "Barcode Scanner",
	1024: "Generic Glucose Meter",
	1088: "Generic: Running Walking Sensor",
	1089: "Running Walking Sensor: In-Shoe",
	1090: "Running Walking Sensor: On-Shoe",
	1091: "Running Walking Sensor: On-Hip",
	1152: "Generic: Cycling",
	1153: "Cycling: Cycling Computer",
	1154: "Cycling: Speed Sensor",
	1155: "Cycling: Cadence Sensor",
	1156: "Cycling: Power Sensor",
	1157: "Cycling: Speed and Cadence Sensor",
	3136: "Generic: Pulse Oximeter",
	3200: "Generic: Weight Scale",
	3264: "Generic: Personal Mobility Device",
	3328: "Generic: Continuous Glucose Monitor",
	3392: "Generic: Insulin Pump",
	5184: "Generic Outdoor Sports Activity",
	5185: "Location Display Device",
	5186: "Location and Navigation Display Device",
	5187: "Location Pod",
	5188: "Location and Navigation Pod",
}

var services = map[string]string{
	"1800": "Generic Access",
	"1801": "Generic Attribute",
	"1802": "Immediate Alert",
	"1803": "Link Loss",
	"1804": "Tx Power",
	"1805": "Current Time Service",
	"1806": "Reference Time Update Service",
	"1807": "Next DST Change Service",
	"1808": "Glucose",
	"1809": "Health Thermometer",
	"180A": "Device Information",
	"180D": "Heart Rate",
	"180F": "Battery Service",
	"1810": "Blood Pressure",
	"1811": "Alert Notification Service",
	"1812": "Human Interface Device",
	"1813": "Scan Parameters",
	"1814": "Running Speed and Cadence",
	"1815": "Automation IO",
	"1816": "Cycling Speed and Cadence",
	"1818": "Cycling Power",
	"1819": "Location and Navigation",
	"181A": "Environmental Sensing",
	"181B": "Body Composition",
	"181C": "User Data",
	"181D": "Weight Scale",
	"181E": "Bond Management Service",
	"181F": "Continuous Glucose Monitoring",
	"1820": "Internet Protocol Support Service",
	"1821": "Indoor Positioning",
	"1822": "Pulse Oximeter Service",
	"1823": "HTTP Proxy",
	"1824": "Transport Discovery",
	"1825": "Object Transfer Service",
	"1826": "Fitness Machine",
	"1827": "Mesh Provisioning Service",
	"1828": "Mesh Proxy Service",
}

// Appearance returns the name of a GAP appearance value.
func Appearance(code int) string {
	if name, ok := appearances[code]; ok {
		return name
	}
	return "Unknown or Reserved"
}

// ServiceName returns the name of a 16-bit service id given as four hex
// digits in either case. Unknown ids come back as "0x<id>".
func ServiceName(id string) string {
	if name, ok := services[strings.ToUpper(id)]; ok {
		return name
	}
	return "0x" + id
}
