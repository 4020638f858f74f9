package backend

const validatePromotionQuery = `
query ValidatePromotion($code: String!) {
  validatePromotion(code: $code) {
    id
    title
    code
    discountType
    discountValue
    minimumPurchase
    scope
  }
}`

const createPaymentIntentMutation = `
mutation CreatePaymentIntent($input: CreatePaymentIntentInput!) {
  createPaymentIntent(input: $input) {
    id
    amount
    status
  }
}`

const getPaymentIntentQuery = `
query GetPaymentIntent($id: ID!) {
  getPaymentIntent(id: $id) {
    id
    userId
    products {
      productId
      quantity
      price
    }
    totalAmount
    shippingAddress { type street city state zip country phoneNumber isDefault }
    billingAddress { type street city state zip country phoneNumber isDefault }
    paymentMethod
    status
    expiresAt
  }
}`

const confirmOrderMutation = `
mutation ConfirmOrder($paymentIntentId: ID!, $paymentStatus: String!) {
  confirmOrder(paymentIntentId: $paymentIntentId, paymentStatus: $paymentStatus) {
    id
    status
    paymentStatus
    totalAmount
    createdAt
  }
}`

const createRazorpayOrderMutation = `
mutation CreateRazorpayOrder($input: CreateRazorpayOrderInput!) {
  createRazorpayOrder(input: $input) {
    razorpayOrderId
    amount
    currency
    key
  }
}`

const verifyRazorpayPaymentMutation = `
mutation VerifyRazorpayPaymentAndConfirmOrder($input: VerifyRazorpayPaymentInput!) {
  verifyRazorpayPaymentAndConfirmOrder(input: $input) {
    success
    orderId
    status
  }
}`

const handleRazorpayPaymentFailureMutation = `
mutation HandleRazorpayPaymentFailure($razorpayOrderId: String!, $errorCode: String, $errorDescription: String) {
  handleRazorpayPaymentFailure(razorpayOrderId: $razorpayOrderId, errorCode: $errorCode, errorDescription: $errorDescription)
}`

const getOrderQuery = `
query GetOrder($id: ID!) {
  getOrder(id: $id) {
    id
    products {
      productId
      name
      quantity
      price
    }
    shippingAddress { type street city state zip country phoneNumber isDefault }
    totalAmount
    status
    paymentStatus
    trackingNumber
    createdAt
  }
}`

const pingQuery = `query Ping { __typename }`
