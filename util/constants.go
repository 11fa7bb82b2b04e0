package util

// Collections
const (
	UserCollection        = "users"
	AppointmentCollection = "appointments"
	ChatCollection        = "chats"
)

// Cache keys
const (
	UserKey = "USER:"
)

// Error messages returned to clients
const (
	INTERNAL_SERVER_ERROR        = "Something went wrong!"
	INVALID_REQUEST_BODY         = "Invalid request body"
	MISSING_REQUIRED_FIELDS      = "Missing required fields"
	MISSING_DOCTOR_OR_PATIENT_ID = "Missing doctorId or patientId"
	NAME_EMAIL_PASSWORD_REQUIRED = "Name, email, and password are required"
	EMAIL_AND_PASSWORD_REQUIRED  = "Email and password are required"
	DOCTOR_FIELDS_REQUIRED       = "Department, bio, image, age, and experience are required for doctors"
	DOCTOR_AGE_OUT_OF_RANGE      = "Doctor age must be between 25 and 80"
	INVALID_ROLE                 = "Role must be patient or doctor"
	USER_ALREADY_EXISTS          = "User already exists"
	INVALID_CREDENTIALS          = "Invalid credentials"
	APPOINTMENT_NOT_FOUND        = "Appointment not found"
	USER_NOT_FOUND               = "User not found"
	INVALID_APPOINTMENT_TYPE     = "appointmentType must be online or offline"
	DATE_AND_TIME_REQUIRED       = "date and time are required for offline appointments"
	INVALID_STATUS_FILTER        = "status must be one of pending, accepted, rejected"
	NOT_APPOINTMENT_DOCTOR       = "Only the doctor of this appointment can change its status"
	NOT_THREAD_PARTICIPANT       = "Only the doctor and patient of this thread can access it"
	ROLE_CANNOT_CHAT             = "Only patients and doctors can send messages"
	NO_TOKEN_PROVIDED            = "Not authorized, no token provided"
	TOKEN_FAILED                 = "Not authorized, token failed"
	TOKEN_USER_NOT_FOUND         = "Not authorized, user not found"
	TOO_MANY_REQUESTS            = "Too many requests"
	INVALID_EMAIL                = "Email is not valid"
)
