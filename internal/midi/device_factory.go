package midi

// GetDevice returns the appropriate Device implementation for the given type
func GetDevice(deviceType DeviceType) Device {
	switch deviceType {
	case DeviceTypeGeneric:
		return &GenericDevice{}
	default:
		return &AtomDevice{}
	}
}
